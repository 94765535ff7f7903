package keyfile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Key file kinds, used as file extensions.
const (
	KindPublic  = "public"
	KindPrivate = "private"
)

const signatureExt = ".sgn"

// Timestamp formats t as YYYY-M-D_HMSms, without zero padding.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d_%d%d%d%d",
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// KeyFileName returns "{prefix}-{bits}bits.{kind}", or
// "DSA-{bits}bits_{ts}.{kind}" when prefix is empty.
func KeyFileName(prefix string, bits int, kind, ts string) string {
	if prefix == "" {
		return fmt.Sprintf("DSA-%dbits_%s.%s", bits, ts, kind)
	}
	return fmt.Sprintf("%s-%dbits.%s", prefix, bits, kind)
}

// SignatureFileName returns "{base}_DigitalSignature_{ts}.sgn", where base
// is the input file name without directory and extension. The result sits
// in the current directory.
func SignatureFileName(input, ts string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_DigitalSignature_%s%s", base, ts, signatureExt)
}
