// Copyright 2025 Microsoft Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secret

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+"

	// MinPasswordLength and MaxPasswordLength bound the total length of a
	// generated password; the actual length is chosen at random per call.
	MinPasswordLength = 28
	MaxPasswordLength = 36
)

// credentialEndDate is the fixed far-future expiry stamped on every generated
// credential. Credentials are deleted together with their principal, so the
// window is never the thing that retires them.
var credentialEndDate = time.Date(2299, time.December, 31, 23, 59, 59, 0, time.UTC)

// Credential is a generated password plus its validity window.
type Credential struct {
	Password  string
	StartDate time.Time
	EndDate   time.Time
}

// NewCredential generates a fresh password credential valid from now until
// the fixed far-future end date.
func NewCredential() (Credential, error) {
	password, err := NewPassword()
	if err != nil {
		return Credential{}, err
	}
	return Credential{
		Password:  password,
		StartDate: time.Now().UTC(),
		EndDate:   credentialEndDate,
	}, nil
}

// NewPassword generates a random password of MinPasswordLength to
// MaxPasswordLength characters drawing from four disjoint character classes.
// A quarter of the total length is allocated to uppercase letters and the
// same quarter-sized allocation is used twice more, once for digits and once
// for special characters; the remainder is lowercase. The combined sequence
// is shuffled uniformly before it is returned.
func NewPassword() (string, error) {
	length, err := randomInt(MaxPasswordLength - MinPasswordLength + 1)
	if err != nil {
		return "", fmt.Errorf("failed to choose password length: %w", err)
	}
	length += MinPasswordLength

	quarter := length / 4
	upperCount := quarter
	digitCount := quarter
	specialCount := quarter
	lowerCount := length - upperCount - digitCount - specialCount

	password := make([]byte, 0, length)
	for _, class := range []struct {
		chars string
		count int
	}{
		{lowerChars, lowerCount},
		{upperChars, upperCount},
		{digitChars, digitCount},
		{specialChars, specialCount},
	} {
		for i := 0; i < class.count; i++ {
			idx, err := randomInt(len(class.chars))
			if err != nil {
				return "", fmt.Errorf("failed to pick password character: %w", err)
			}
			password = append(password, class.chars[idx])
		}
	}

	// Fisher-Yates shuffle so class runs do not leak position information.
	for i := len(password) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", fmt.Errorf("failed to shuffle password: %w", err)
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
