// Command gettoken obtains identity tokens for calling the protected routes by hand.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/gc02/usuario-server/internal/token"
)

var errMissingCredentials = errors.New("email and password are required unless --local is set")

// session is what a successful sign-in yields.
type session struct {
	IDToken      string
	RefreshToken string
	UID          string
	ExpiresIn    time.Duration
}

// signInFunc exchanges email and password for a session.
type signInFunc func(ctx context.Context, apiKey, email, password string) (session, error)

func main() {
	_ = godotenv.Load()

	if err := newCommand(signInWithPassword).Run(context.Background(), os.Args); err != nil {
		log.Fatalf("gettoken: %v", err)
	}
}

func newCommand(signIn signInFunc) *cli.Command {
	return &cli.Command{
		Name:  "gettoken",
		Usage: "Print an identity token for the usuario API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "account email"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "account password"},
			&cli.StringFlag{Name: "api-key", Usage: "Firebase web API key", Sources: cli.EnvVars("FIREBASE_API_KEY")},
			&cli.BoolFlag{Name: "local", Usage: "mint a token for IDENTITY_MODE=local instead of signing in"},
			&cli.StringFlag{Name: "uid", Usage: "user id to mint the local token for"},
			&cli.StringFlag{Name: "secret", Usage: "local signing secret", Value: "devsecret", Sources: cli.EnvVars("IDENTITY_LOCAL_SECRET")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("local") {
				return mintLocal(cmd.Root().Writer, cmd.String("secret"), cmd.String("uid"), cmd.String("email"))
			}

			email, password := cmd.String("email"), cmd.String("password")
			if email == "" || password == "" {
				return errMissingCredentials
			}
			apiKey := cmd.String("api-key")
			if apiKey == "" {
				return errors.New("FIREBASE_API_KEY is not set")
			}

			s, err := signIn(ctx, apiKey, email, password)
			if err != nil {
				return fmt.Errorf("failed to sign in: %w", err)
			}
			printSession(cmd.Root().Writer, s)
			return nil
		},
	}
}

func mintLocal(w io.Writer, secret, uid, email string) error {
	if uid == "" {
		return errors.New("--uid is required with --local")
	}

	idToken, ttl, err := token.NewJWT(secret).GenerateIDToken(uid, email)
	if err != nil {
		return err
	}
	printSession(w, session{IDToken: idToken, UID: uid, ExpiresIn: ttl})
	return nil
}

func signInWithPassword(ctx context.Context, apiKey, email, password string) (session, error) {
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return session{}, err
	}

	resp, err := svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return session{}, err
	}

	return session{
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		UID:          resp.LocalId,
		ExpiresIn:    time.Duration(resp.ExpiresIn) * time.Second,
	}, nil
}

func printSession(w io.Writer, s session) {
	fmt.Fprintf(w, "idToken: %s\n", s.IDToken)
	if s.RefreshToken != "" {
		fmt.Fprintf(w, "refreshToken: %s\n", s.RefreshToken)
	}
	fmt.Fprintf(w, "uid: %s\n", s.UID)
	fmt.Fprintf(w, "expiresIn: %s\n", s.ExpiresIn)
	fmt.Fprintf(w, "\nAuthorization: Bearer %s\n", s.IDToken)
}
