package github

import (
	"context"
	"errors"
	"testing"

	"github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/cmd/cmdtest"
)

func TestAuthStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resp       cmdtest.Response
		wantErr    bool
		wantUnauth bool
	}{
		{"logged in", cmdtest.Response{Stdout: "Logged in to github.com as me\n"}, false, false},
		{"not logged", cmdtest.Response{Stderr: "You are not logged into any GitHub hosts.", Code: 1}, true, true},
		{"silent failure", cmdtest.Response{Code: 1}, true, true},
		{"other failure", cmdtest.Response{Stderr: "token expired for github.com", Code: 1}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := cmdtest.New().On("gh auth status", tt.resp)
			_, err := New(r, "", "").AuthStatus(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("AuthStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := errors.Is(err, ErrGHNotAuthenticated); got != tt.wantUnauth {
				t.Errorf("errors.Is(ErrGHNotAuthenticated) = %v, want %v", got, tt.wantUnauth)
			}
			if err != nil && cmd.ExitCode(err) != 1 {
				t.Errorf("ExitCode = %d, want 1", cmd.ExitCode(err))
			}
		})
	}
}

func TestAuthUser(t *testing.T) {
	t.Parallel()

	r := cmdtest.New().On("gh api user --jq .login", cmdtest.Response{Stdout: "octocat\n"})
	user, err := New(r, "", "").AuthUser(context.Background())
	if err != nil || user != "octocat" {
		t.Errorf("AuthUser() = %q, %v; want octocat", user, err)
	}

	empty := cmdtest.New()
	if _, err := New(empty, "", "").AuthUser(context.Background()); err == nil {
		t.Error("AuthUser() with empty output = nil error")
	}
}
