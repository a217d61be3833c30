// Package cookie sets and reads HTTP cookies whose values are signed
// (HMAC-SHA256) or encrypted (AES-256-GCM).
//
// Keys are derived from arbitrary-length secrets with HKDF-SHA256, so a short
// SECRET_KEY still yields full-strength encryption and MAC keys. The first
// secret writes; every secret reads, which allows rotation:
//
//	man, err := cookie.New([]string{current, previous}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	_ = man.SetEncrypted(w, "presence_session", token)
//	token, err := man.GetEncrypted(r, "presence_session")
//
// Failures are reported with sentinel errors such as ErrCookieNotFound,
// ErrInvalidSignature and ErrDecryptionFailed.
package cookie
