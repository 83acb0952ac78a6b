package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var adduserFlags struct {
	name        string
	email       string
	role        string
	department  string
	password    string
	permissions []string
}

var adduserCmd = &cobra.Command{
	Use:   "adduser",
	Short: "Create a user",
	Long:  "Create a user directly in the database. The password is read from the terminal when --password is not given.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg, cmd.ErrOrStderr())

		err = connect(cfg)
		if err != nil {
			return err
		}
		defer disconnect()

		return addUser(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	f := adduserCmd.Flags()
	f.StringVar(&adduserFlags.name, "name", "", "Name of the user")
	f.StringVar(&adduserFlags.email, "email", "", "Email address, used to log in")
	f.StringVar(&adduserFlags.role, "role", string(models.RoleUser), "Role: admin, manager or user")
	f.StringVar(&adduserFlags.department, "department", "", "Department")
	f.StringVar(&adduserFlags.password, "password", "", "Password (optional, will prompt if omitted)")
	f.StringSliceVar(&adduserFlags.permissions, "permission", nil, "Additional permission, e.g. approve_expenses. Can be repeated")

	_ = adduserCmd.MarkFlagRequired("email")
}

// addUser creates the user from the flags. models.DB must be connected.
func addUser(stdin io.Reader, stdout io.Writer) error {
	role := models.Role(adduserFlags.role)
	if !role.Valid() {
		return models.ErrInvalidRole
	}

	password := adduserFlags.password
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if len(strings.TrimSpace(password)) < 8 {
		return errors.New("the password must have at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	name := adduserFlags.name
	if name == "" {
		name = adduserFlags.email
	}

	user := models.User{
		Name:         name,
		Email:        adduserFlags.email,
		PasswordHash: hash,
		Role:         role,
		Department:   adduserFlags.department,
		Permissions:  adduserFlags.permissions,
		IsActive:     true,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s (%s) created with ID %s\n", user.Email, user.Role, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	// Not a terminal, e.g. a pipe
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
