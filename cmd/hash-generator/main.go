// Command hash-generator produces credentials for seeding and
// configuration: a bcrypt hash for a given password, or a random
// signing secret suitable for GATE_AUTH_SIGNING_SECRET.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "", "password to hash with bcrypt")
	secret := flag.Bool("secret", false, "generate a random 32-byte signing secret")
	flag.Parse()

	switch {
	case *secret:
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating secret: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hex.EncodeToString(buf))
	case *password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
	default:
		flag.Usage()
		os.Exit(2)
	}
}
