package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
	"github.com/spf13/cobra"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// credentials returns the email from args or a prompt, and a prompted
// password. The caller wipes the password.
func (a *App) credentials(args []string) (string, []byte, error) {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return "", nil, err
		}
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "login [email]",
		Short:   "Log in and keep the session tokens",
		GroupID: "session",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials(args)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			res, err := a.auth.Login(cmd.Context(), email, string(password))
			if err != nil {
				return err
			}

			msg := "Logged in"
			if res.Message != "" {
				msg = res.Message
			}
			fmt.Fprintln(a.out, msg)
			if res.RosaToken == "" {
				fmt.Fprintln(a.out, "No chat bot token issued; chat-bot-history is unavailable")
			}
			return nil
		},
	}
}

func (a *App) signupCommand() *cobra.Command {
	var req models.SignupRequest

	cmd := &cobra.Command{
		Use:     "signup [email]",
		Short:   "Create an account",
		GroupID: "session",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := a.credentials(args)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			req.Email, req.Password = email, string(password)
			res, err := a.auth.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}

			switch {
			case res.BearerToken() != "":
				fmt.Fprintln(a.out, "Account created, logged in")
			case res.Message != "":
				fmt.Fprintln(a.out, res.Message)
			default:
				fmt.Fprintln(a.out, "Account created")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Role, "role", "", "account role")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Forget the session tokens",
		GroupID: "session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the stored tokens",
		GroupID: "session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := a.auth.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tSTATUS\tSUBJECT\tEMAIL\tROLE\tEXPIRES")
			for _, st := range statuses {
				status := "absent"
				switch {
				case !st.Present:
				case st.Opaque:
					status = "opaque"
				case st.Expired:
					status = "expired"
				default:
					status = "valid"
				}

				expires := ""
				if !st.Claims.ExpiresAt.IsZero() {
					expires = st.Claims.ExpiresAt.Local().Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					st.Key, status, st.Claims.Subject, st.Claims.Email, st.Claims.Role, expires)
			}
			return w.Flush()
		},
	}
}

// notify prints err as the one-line notification a failed command shows.
func (a *App) notify(err error) {
	fmt.Fprintln(a.errOut, "Error: "+strings.TrimSpace(Describe(err)))
}
