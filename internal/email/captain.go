package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/accresults/internal/teams"
)

const captainEmailTimeout = 5 * time.Second

// CaptainNotifier emails a user when they are made captain of a team.
type CaptainNotifier struct {
	client  EmailSender
	baseURL string
	// done, when set, receives the result of each asynchronous send.
	done chan<- error
}

func NewCaptainNotifier(client EmailSender, baseURL string) (*CaptainNotifier, error) {
	if client == nil {
		return nil, errors.New("captain notifier requires an email sender")
	}
	return &CaptainNotifier{client: client, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// NotifyCaptainAssigned queues the email and returns without waiting for delivery.
func (n *CaptainNotifier) NotifyCaptainAssigned(ctx context.Context, assignment teams.CaptainAssignment) error {
	recipient := strings.TrimSpace(assignment.Captain.Email)
	if recipient == "" {
		return fmt.Errorf("captain %d has no email address", assignment.Captain.ID)
	}

	teamURL := ""
	if n.baseURL != "" {
		teamURL = fmt.Sprintf("%s/teams/%d", n.baseURL, assignment.Team.ID)
	}
	message := BuildCaptainAssignedEmail(CaptainAssignedDetails{
		CaptainName: assignment.Captain.FullName(),
		TeamName:    assignment.Team.Name,
		Year:        assignment.Team.Year,
		TeamURL:     teamURL,
	})

	logger := log.Ctx(ctx).With().
		Int64("team_id", assignment.Team.ID).
		Int64("user_id", assignment.Captain.ID).
		Logger()

	go func() {
		// The request context is usually cancelled before SES answers.
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), captainEmailTimeout)
		defer cancel()
		err := n.client.Send(sendCtx, recipient, message.Subject, message.Body)
		if err != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send captain email")
		}
		if n.done != nil {
			n.done <- err
		}
	}()
	return nil
}
