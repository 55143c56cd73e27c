// Command idbadge is a terminal front end for the employee badge client:
// password and biometric login against the HR identity service, QR badge
// rendering, and logout.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aussiebroadwan/idbadge/internal/badge/app"
	"github.com/aussiebroadwan/idbadge/internal/badge/domain"
	"github.com/aussiebroadwan/idbadge/internal/badge/session"
	"github.com/aussiebroadwan/idbadge/pkg/qrx"
)

const usage = `Usage: idbadge <command> [flags]

Commands:
  login      Log in with employee id and password
  autologin  Log in with the stored credential and a biometric check
  whoami     Show the current session
  qr         Render the profile QR code as a PNG
  logout     Log out and clear stored credentials

Environment:
  BADGE_API_URL    HR identity service base URL (default http://localhost:8080)
  BADGE_DATA_DIR   Data directory for session and vault files
  BADGE_BIOMETRIC  Biometric stub mode: approve, deny, unavailable, unenrolled
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "idbadge: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	ctx := context.Background()

	a, err := app.New(app.LoadConfig(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Manager.RestoreSession(ctx)

	switch command {
	case "login":
		return runLogin(ctx, a, args)
	case "autologin":
		return runAutoLogin(ctx, a)
	case "whoami":
		return runWhoami(a)
	case "qr":
		return runQr(ctx, a, args)
	case "logout":
		a.Manager.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	userID := fs.String("user", "", "employee id (prompted if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	if *userID == "" {
		id, err := prompt(in, "Employee ID: ")
		if err != nil {
			return err
		}
		*userID = id
	}
	password, err := prompt(in, "Password: ")
	if err != nil {
		return err
	}

	res, err := a.Manager.Login(ctx, *userID, password)
	if err != nil {
		return err
	}
	printProfile(res.Profile)

	if res.PromptEnroll {
		answer, err := prompt(in, "Enable biometric login on this device? [y/N] ")
		if err == nil && strings.EqualFold(answer, "y") {
			if err := a.Manager.EnrollBiometric(ctx, *userID, password); err != nil {
				fmt.Fprintf(os.Stderr, "could not enable biometric login: %v\n", err)
			} else {
				fmt.Println("Biometric login enabled.")
			}
		}
	}
	return nil
}

func runAutoLogin(ctx context.Context, a *app.App) error {
	res, err := a.Manager.TryBiometricAutoLogin(ctx)
	switch {
	case err == nil:
		printProfile(res.Profile)
		return nil
	case errors.Is(err, session.ErrNoCredential):
		return errors.New("no stored credential; run `idbadge login` first")
	case errors.Is(err, session.ErrBiometricUnavailable),
		errors.Is(err, session.ErrBiometricNotEnrolled):
		return fmt.Errorf("biometric login not available on this device (%v)", err)
	case errors.Is(err, session.ErrBiometricCancelled):
		return errors.New("biometric verification cancelled")
	default:
		return err
	}
}

func runWhoami(a *app.App) error {
	state := a.Manager.State()
	if !state.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	printProfile(state.Profile)
	return nil
}

func runQr(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	out := fs.String("out", "badge.png", "output PNG path")
	size := fs.Int("size", qrx.DefaultSize, "image size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := a.Manager.State()
	if !state.LoggedIn() {
		return errors.New("not logged in")
	}

	profile, err := a.Manager.FetchQrProfile(ctx, state.Profile.UserID, state.Token)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	url := a.Identity.ProfileURL(profile.RecordID)
	if err := qrx.EncodePNG(f, url, *size); err != nil {
		return err
	}

	printProfile(profile)
	fmt.Printf("QR badge for %s written to %s\n", url, *out)
	return nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printProfile(p domain.Profile) {
	fmt.Printf("%s (%s)\n", p.FullName, p.UserID)
	if p.Department != "" {
		fmt.Printf("  Department: %s\n", p.Department)
	}
	if p.Email != "" {
		fmt.Printf("  Email:      %s\n", p.Email)
	}
	if p.PhoneNumber != "" {
		fmt.Printf("  Phone:      %s\n", domain.FormatPhone(p.PhoneNumber))
	}
}
