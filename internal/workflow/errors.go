package workflow

import "fmt"

// Sync stages.
const (
	StagePull   = "pull"
	StageCommit = "commit"
	StagePush   = "push"
)

// StageError reports the sync stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("sync failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Credential repair steps.
const (
	StepReadToken        = "read-token"
	StepWriteCredentials = "write-credentials"
	StepRewriteRemote    = "rewrite-remote"
)

// CredentialStepError reports the fix-creds step that failed.
// CredentialsChanged is set when the credentials file had already been
// rewritten before the failure.
type CredentialStepError struct {
	Step               string
	Err                error
	CredentialsChanged bool
}

func (e *CredentialStepError) Error() string {
	msg := fmt.Sprintf("fix-creds failed at %s: %v", e.Step, e.Err)
	if e.CredentialsChanged {
		msg += " (credentials file was already updated)"
	}
	return msg
}

func (e *CredentialStepError) Unwrap() error { return e.Err }
