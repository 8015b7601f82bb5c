package web

import (
	"net/http"
	"net/url"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/session"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
)

// authForm is the data of the signed-out pages.
type authForm struct {
	Email string
	Token string
	Form  url.Values
}

// handleLoginForm renders the sign-in page. Visiting it signs the browser out.
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.tokens(w, r).Clear(r.Context())
	s.render(w, r, http.StatusOK, "login.html", page{Title: "Sign in", Data: authForm{}})
}

// handleLogin handles POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	// A signed-in session never keeps an id the browser arrived with.
	sess := s.browserSession(w, r)
	previous := sess.Renew()
	deps := orchestrators.LoginDeps{API: s.api, Tokens: s.tokens(w, r), Marker: sess}

	if err := orchestrators.ExecuteLogin(r.Context(), input, deps); err != nil {
		p := page{Title: "Sign in", Data: authForm{Email: input.Email}}
		s.render(w, r, http.StatusUnauthorized, "login.html", p.withAlert(alertDanger, message(err, "Unable to sign in")))
		return
	}
	if previous != "" {
		session.NewTokenStore(s.sessions, previous, nil).Clear(r.Context())
		session.NewWizardStore(s.sessions, previous).Clear(r.Context())
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout handles POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutDeps{
		API:    s.api,
		Tokens: s.tokens(w, r),
		Wizard: s.wizardState(w, r),
	})
	http.Redirect(w, r, s.baseURL+"/login", http.StatusSeeOther)
}

func (s *Server) handleForgotForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forgot.html", page{Title: "Forgot password", Data: authForm{}})
}

// handleForgot handles POST /forgot-password
func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	p := page{Title: "Forgot password", Data: authForm{Email: email}}
	deps := orchestrators.AccountDeps{API: s.api, Tokens: s.tokens(w, r)}

	if err := orchestrators.ExecuteForgotPassword(r.Context(), email, deps); err != nil {
		if s.failed(w, r, "forgot_password", err) {
			return
		}
		s.render(w, r, http.StatusOK, "forgot.html", p.withAlert(alertDanger, message(err, "Unable to send the reset link")))
		return
	}
	s.render(w, r, http.StatusOK, "forgot.html", p.withAlert(alertInfo, orchestrators.MsgResetLinkSent))
}

// handleResetForm renders the reset page, prefilling the token from the
// emailed link.
func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "reset.html", page{Title: "Reset password", Data: authForm{Token: r.URL.Query().Get("token")}})
}

// handleReset handles POST /reset-password
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	reset := account.PasswordReset{Token: r.PostFormValue("token"), NewPassword: r.PostFormValue("new_password")}
	p := page{Title: "Reset password", Data: authForm{Token: reset.Token}}
	deps := orchestrators.AccountDeps{API: s.api, Tokens: s.tokens(w, r)}

	if err := orchestrators.ExecuteResetPassword(r.Context(), reset, deps); err != nil {
		if s.failed(w, r, "reset_password", err) {
			return
		}
		s.render(w, r, http.StatusOK, "reset.html", p.withAlert(alertDanger, message(err, "Reset failed")))
		return
	}
	s.render(w, r, http.StatusOK, "reset.html", p.withAlert(alertSuccess, orchestrators.MsgPasswordUpdated))
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", page{Title: "Create coach account", Data: authForm{Form: url.Values{}}})
}

// handleRegister handles POST /register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	deps := orchestrators.AccountDeps{API: s.api, Tokens: s.tokens(w, r)}

	if err := orchestrators.ExecuteRegisterCoach(r.Context(), registrationForm(r.PostForm), deps); err != nil {
		if s.failed(w, r, "register", err) {
			return
		}
		kept := url.Values{}
		for k, v := range r.PostForm {
			if k != "password" {
				kept[k] = v
			}
		}
		p := page{Title: "Create coach account", Data: authForm{Form: kept}}
		s.render(w, r, http.StatusOK, "register.html", p.withAlert(alertDanger, message(err, "Registration failed")))
		return
	}
	p := page{Title: "Create coach account", Data: authForm{Form: url.Values{}}}
	s.render(w, r, http.StatusOK, "register.html", p.withAlert(alertSuccess, orchestrators.MsgCoachRegistered))
}
