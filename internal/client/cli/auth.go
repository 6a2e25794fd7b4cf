package cli

import (
	"context"
	"fmt"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/services"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/session"
)

// sessionOrReport fetches the session from ctx, reporting when it is missing.
func (a *App) sessionOrReport(ctx context.Context) (*session.Session, bool) {
	s, err := session.FromContext(ctx)
	if err != nil {
		a.notify(false, err.Error(), "")
		return nil, false
	}
	return s, true
}

// ask reads one line and reports input errors; ok is false on failure.
func (a *App) ask(prompt string) (string, bool) {
	v, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		a.notify(false, fmt.Sprintf("read input: %v", err), "")
		return "", false
	}
	return v, true
}

func (a *App) askSecret(prompt string) (string, bool) {
	v, err := readSecret(a.reader, prompt, a.out)
	if err != nil {
		a.notify(false, fmt.Sprintf("read input: %v", err), "")
		return "", false
	}
	return v, true
}

func (a *App) Login(ctx context.Context) {
	s, ok := a.sessionOrReport(ctx)
	if !ok {
		return
	}
	email, ok := a.ask("Email")
	if !ok {
		return
	}
	password, ok := a.askSecret("Password")
	if !ok {
		return
	}

	res := s.Login(ctx, email, password)
	if res.Success {
		a.notify(true, fmt.Sprintf("Welcome, %s", res.Data.Profile().DisplayName()), "")
		return
	}
	a.notify(false, res.Message, "Login failed")
}

func (a *App) Register(ctx context.Context) {
	s, ok := a.sessionOrReport(ctx)
	if !ok {
		return
	}

	var req services.RegisterRequest
	if req.Email, ok = a.ask("Email"); !ok {
		return
	}
	if req.FirstName, ok = a.ask("First name (optional)"); !ok {
		return
	}
	if req.LastName, ok = a.ask("Last name (optional)"); !ok {
		return
	}
	if req.Password, ok = a.askSecret("Password"); !ok {
		return
	}
	if req.ConfirmPassword, ok = a.askSecret("Confirm password"); !ok {
		return
	}

	res := s.Register(ctx, req)
	a.notify(res.Success, res.Message, "Registered, you can log in now")
}

func (a *App) Logout(ctx context.Context) {
	s, ok := a.sessionOrReport(ctx)
	if !ok {
		return
	}
	if !Confirm(a.reader, "Log out?", a.out) {
		a.notify(true, "Cancelled", "")
		return
	}

	res := s.Logout(ctx)
	a.notify(res.Success, res.Message, "Logged out")
}

func (a *App) Forgot(ctx context.Context) {
	s, ok := a.sessionOrReport(ctx)
	if !ok {
		return
	}
	email, ok := a.ask("Email")
	if !ok {
		return
	}

	res := s.ForgotPassword(ctx, email)
	a.notify(res.Success, res.Message, "Check your email for the reset code")
}

func (a *App) Reset(ctx context.Context) {
	s, ok := a.sessionOrReport(ctx)
	if !ok {
		return
	}
	token, ok := a.ask("Reset code")
	if !ok {
		return
	}
	password, ok := a.askSecret("New password")
	if !ok {
		return
	}
	confirm, ok := a.askSecret("Confirm new password")
	if !ok {
		return
	}

	res := s.ResetPassword(ctx, token, password, confirm)
	a.notify(res.Success, res.Message, "Password changed, you can log in now")
}

func (a *App) WhoAmI(ctx context.Context) {
	s, ok := a.sessionOrReport(ctx)
	if !ok {
		return
	}
	st := s.State()
	if st.User == nil {
		a.notify(true, st.Status.String(), "")
		return
	}
	fmt.Fprintf(a.out, "Email: %s\nName:  %s %s\n", st.User.Email, st.User.FirstName, st.User.LastName)
	a.notify(true, st.Status.String(), "")
}
