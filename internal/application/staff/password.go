package staff

import (
	"crypto/rand"
	"math/big"
)

// PasswordCharset caracteres de las contraseñas temporales (sin 0/O, 1/l/I).
const PasswordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%&*"

// PasswordLength longitud de las contraseñas temporales.
const PasswordLength = 12

// GeneratePassword contraseña temporal aleatoria con crypto/rand.
func GeneratePassword() (string, error) {
	max := big.NewInt(int64(len(PasswordCharset)))
	out := make([]byte, PasswordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = PasswordCharset[n.Int64()]
	}
	return string(out), nil
}
