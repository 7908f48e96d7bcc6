package service

// Sealer encrypts small secrets (the stored token values) at rest. It keeps
// credentials out of casual reads of the device store file; it is not a
// substitute for OS-level protection of the key file.
type Sealer interface {
	// Seal encrypts the plaintext.
	Seal(plaintext []byte) ([]byte, error)

	// Open decrypts a previously sealed value.
	Open(sealed []byte) ([]byte, error)
}
