package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/service"
)

var errQuit = errors.New("quit")

// binder requests authorization sessions for other runtimes.
type binder interface {
	Request(ctx context.Context, deliver func(authURL string)) (model.AuthorizationGrant, error)
}

// shell is the line-oriented front-end of the sign-in flow.
type shell struct {
	auth     *service.Orchestrator
	bindings binder
	in       *bufio.Scanner
	out      io.Writer
}

func newShell(auth *service.Orchestrator, bindings binder, in io.Reader, out io.Writer) *shell {
	return &shell{
		auth:     auth,
		bindings: bindings,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (s *shell) run(ctx context.Context) error {
	state, err := s.auth.Init(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	s.render(state)

	for {
		fmt.Fprint(s.out, prompt(s.auth.State().Step))
		if !s.in.Scan() {
			return s.in.Err()
		}

		err := s.dispatch(ctx, strings.TrimSpace(s.in.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func prompt(step model.Step) string {
	switch step {
	case model.StepAwaitingCode:
		return "code (resend, cancel)> "
	case model.StepAuthenticated:
		return "command (whoami, sync, bind <id>, request-bind, signout, quit)> "
	default:
		return "email> "
	}
}

func (s *shell) dispatch(ctx context.Context, line string) error {
	command, arg, _ := strings.Cut(line, " ")

	switch command {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "retry":
		s.render(s.auth.Retry())
		return nil
	case "signout", "cancel":
		s.auth.SignOut(ctx)
		fmt.Fprintln(s.out, "Signed out.")
		return nil
	}

	var (
		state model.AuthSession
		err   error
	)

	switch s.auth.State().Step {
	case model.StepAnonymous:
		state, err = s.auth.InitiateAuth(ctx, line)
	case model.StepAwaitingCode:
		if command == "resend" {
			state, err = s.auth.ResendCode(ctx)
		} else {
			state, err = s.auth.ConfirmCode(ctx, line)
		}
	case model.StepAuthenticated:
		return s.authenticated(ctx, command, strings.TrimSpace(arg))
	default:
		return model.ErrBusy
	}
	if err != nil {
		return err
	}

	s.render(state)
	return nil
}

func (s *shell) authenticated(ctx context.Context, command, arg string) error {
	switch command {
	case "whoami":
		s.render(s.auth.State())
	case "sync":
		state, err := s.auth.SyncProfile(ctx)
		if err != nil {
			return err
		}
		s.render(state)
	case "bind":
		if arg == "" {
			return errors.New("usage: bind <session id>")
		}
		if err := s.auth.BindSession(ctx, arg); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Session %s bound.\n", arg)
	case "request-bind":
		if s.bindings == nil {
			return errors.New("session binding is not configured")
		}
		grant, err := s.bindings.Request(ctx, func(authURL string) {
			fmt.Fprintf(s.out, "Open %s to authorize.\n", authURL)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Session %s expires at %s.\n", grant.ID, grant.ExpiresAt.Format("15:04:05"))
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func (s *shell) render(state model.AuthSession) {
	switch state.Step {
	case model.StepAuthenticated:
		if state.Identity != nil {
			fmt.Fprintf(s.out, "Signed in as %s.\n", state.Identity.Email)
		}
		if result, ok := s.auth.Profile(); ok && result.Created {
			fmt.Fprintln(s.out, "Profile created.")
		}
	case model.StepAwaitingCode:
		fmt.Fprintf(s.out, "A code was sent to %s.\n", state.PendingIdentifier)
	}

	if state.HasError() {
		fmt.Fprintf(s.out, "%s [%s, %s]\n", state.Error, state.ErrorCategory, state.ErrorAction)
		if state.ErrorCategory.Retryable() {
			fmt.Fprintln(s.out, "Type retry to try again.")
		}
	}
}
