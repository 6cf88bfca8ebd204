package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/config"
	"github.com/dmitrijs2005/clinicadmin/internal/client/services"
	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
)

// now is a test seam for date keywords.
var now = time.Now

// Deps are the collaborators an App is built from.
type Deps struct {
	Config    *config.Config
	Transport client.Transport
	Session   session.Session
	Logger    logging.Logger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

type App struct {
	config    *config.Config
	transport client.Transport
	session   session.Session
	log       logging.Logger
	auth      services.AuthService

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func NewApp(d Deps) *App {
	in, out, errOut := d.In, d.Out, d.ErrOut
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &App{
		config:    d.Config,
		transport: d.Transport,
		session:   d.Session,
		log:       d.Logger,
		auth:      services.NewAuthService(d.Transport, d.Session, d.Logger),
		reader:    bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
	}
}

// Run executes one command line. With no arguments the shell is started.
func (a *App) Run(ctx context.Context, args []string) error {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.ExecuteContext(ctx)
}
