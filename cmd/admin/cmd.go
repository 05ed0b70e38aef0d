package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"reflectify_backend/internals/console"
	"reflectify_backend/internals/console/client"
	database "reflectify_backend/internals/databases"
	authService "reflectify_backend/internals/features/users/auth/service"
	"reflectify_backend/internals/seeds"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	openStores func() (*database.Stores, func(), error)
	isDev      func() bool
	stdout     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.stdout, "Usage:")
	fmt.Fprintln(cli.stdout, "  createadmin -email EMAIL -name NAME [-role admin|super_admin] - create an admin, password is prompted")
	fmt.Fprintln(cli.stdout, "  seed                                                          - load sample admins, academics and forms")
	fmt.Fprintln(cli.stdout, "  reset-dev                                                     - delete all domain data (APP_ENV=development)")
	fmt.Fprintln(cli.stdout, "  console -api URL -email EMAIL                                 - interactive admin console")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createAdminCmd := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	createAdminEmail := createAdminCmd.String("email", "", "Admin email")
	createAdminName := createAdminCmd.String("name", "", "Display name")
	createAdminRole := createAdminCmd.String("role", "admin", "admin or super_admin")

	consoleCmd := flag.NewFlagSet("console", flag.ContinueOnError)
	consoleAPI := consoleCmd.String("api", "http://localhost:3000", "API base URL")
	consoleEmail := consoleCmd.String("email", "", "Admin email")
	consoleTimeout := consoleCmd.Duration("timeout", 10*time.Second, "Request timeout")

	ctx := context.Background()

	switch args[1] {
	case "createadmin":
		if err := createAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createAdminEmail == "" || *createAdminName == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		pwd, err := cli.prompt("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		return cli.createAdmin(ctx, *createAdminEmail, *createAdminName, pwd, *createAdminRole)

	case "seed":
		return cli.seed(ctx)

	case "reset-dev":
		return cli.resetDev(ctx)

	case "console":
		if err := consoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *consoleEmail == "" {
			consoleCmd.Usage()
			return errHelp
		}
		pwd, err := cli.prompt("Password:")
		if err != nil {
			return err
		}
		return cli.console(ctx, *consoleAPI, *consoleEmail, pwd, *consoleTimeout)

	default:
		cli.printUsage()
		return errHelp
	}
}

// prompt membaca password tanpa echo.
func (cli *commandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.stdout, label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.stdout)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pwd)), nil
}

func (cli *commandLine) createAdmin(ctx context.Context, email, name, password, role string) error {
	st, closeFn, err := cli.openStores()
	if err != nil {
		return err
	}
	defer closeFn()

	u, err := authService.CreateAdmin(ctx, st.Admins, email, name, password, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout, "✅ admin %s (%s) dibuat\n", u.AdminUserEmail, u.AdminUserRole)
	return nil
}

func (cli *commandLine) seed(ctx context.Context) error {
	st, closeFn, err := cli.openStores()
	if err != nil {
		return err
	}
	defer closeFn()
	return seeds.RunAllSeeds(ctx, st, seeds.Data)
}

func (cli *commandLine) resetDev(ctx context.Context) error {
	if !cli.isDev() {
		return errors.New("reset-dev hanya bisa dijalankan dengan APP_ENV=development")
	}
	st, closeFn, err := cli.openStores()
	if err != nil {
		return err
	}
	defer closeFn()

	tables, err := st.PurgeDomain(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout, "🧹 dihapus: %s\n", strings.Join(tables, ", "))
	return nil
}

func (cli *commandLine) console(ctx context.Context, api, email, password string, timeout time.Duration) error {
	c := client.New(api, timeout)
	me, err := c.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login gagal: %s", client.Message(err))
	}
	defer func() { _ = c.Logout(context.Background()) }()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "reflectify> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	out := rl.Stdout()
	fmt.Fprintf(out, "👋 Logged in as %s (%s)\n", me.User.Name, me.User.Role)
	sh := console.NewShell(c, out, console.TerminalNotifier{W: out}, cli.isDev())
	return sh.Run(ctx, &promptReader{rl: rl, shell: sh})
}

// promptReader memperbarui prompt (page + mode) sebelum tiap baris.
type promptReader struct {
	rl    *readline.Instance
	shell *console.Shell
}

func (p *promptReader) Readline() (string, error) {
	p.rl.SetPrompt(p.shell.Prompt())
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		if line == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}
