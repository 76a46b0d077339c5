package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPLength is the number of decimal digits in a generated code.
const OTPLength = 6

// GenOTPCode generates a secure random 6-digit OTP code.
// Every value in [100000, 999999] is equally likely.
func GenOTPCode() (string, error) {
	min := big.NewInt(100000)
	span := big.NewInt(900000)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Add(n, min).Int64()), nil
}
