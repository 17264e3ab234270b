package router

import (
	"fmt"

	"github.com/AlexAkulov/reportfox"
	"github.com/AlexAkulov/reportfox/config"
	"github.com/AlexAkulov/reportfox/helpers"
	"github.com/AlexAkulov/reportfox/senders/email"
	"github.com/AlexAkulov/reportfox/senders/file"
	"github.com/AlexAkulov/reportfox/senders/github"
	"github.com/AlexAkulov/reportfox/senders/webhook"

	"github.com/rs/zerolog"
	"gopkg.in/tomb.v2"
)

// CommentRouter fans rendered comments out to every enabled sender. A
// failing sender is logged and skipped, the rest still deliver.
type CommentRouter struct {
	CommentChannel <-chan *reportfox.Comment
	Config         *config.Config
	Context        reportfox.RunContext
	Log            zerolog.Logger

	senders map[string]reportfox.ICommentSender
	tomb    tomb.Tomb
}

func (r *CommentRouter) Start() error {
	r.senders = map[string]reportfox.ICommentSender{}
	if r.Config.SMTP.Enable {
		delay, err := helpers.ParseDuration(r.Config.SMTP.Delay)
		if err != nil {
			return fmt.Errorf("can't parse delay with: %v", err)
		}
		r.senders["email"] = &email.Sender{
			Recipient: r.Config.SMTP.Recipient,
			Config: &email.Config{
				From:           r.Config.SMTP.From,
				SMTPHost:       r.Config.SMTP.Host,
				SMTPPort:       r.Config.SMTP.Port,
				InsecureTLS:    !r.Config.SMTP.TLS,
				Username:       r.Config.SMTP.Username,
				Password:       r.Config.SMTP.Password,
				Delay:          delay,
				RecipientRegex: r.Config.SMTP.RecipientRegex,
			},
			Log: r.Log,
		}
	}
	if r.Config.GitHub.Enable {
		r.senders["github"] = &github.Sender{
			Token:       r.Config.GitHub.Token,
			Owner:       r.Context.Owner,
			Repo:        r.Context.Repo,
			PullRequest: r.Config.GitHub.PullRequest,
			Log:         r.Log,
		}
	}
	if r.Config.Webhook.Enable {
		r.senders["webhook"] = &webhook.Sender{
			Method:  r.Config.Webhook.Method,
			URL:     r.Config.Webhook.URL,
			Headers: r.Config.Webhook.Headers,
		}
	}
	if r.Config.Common.CommentFile != "" {
		r.senders["file"] = &file.Sender{
			CommentFile: r.Config.Common.CommentFile,
		}
	}

	for senderName, sender := range r.senders {
		if err := sender.Start(); err != nil {
			return err
		}
		r.Log.Debug().Str("service", senderName).Msg("started")
	}

	r.tomb.Go(func() error {
		for {
			select {
			case <-r.tomb.Dying(): // Stop
				return nil
			case comment := <-r.CommentChannel:
				for senderName, sender := range r.senders {
					if err := sender.Send(*comment); err != nil {
						r.Log.Error().Str("service", senderName).Str("error", err.Error()).Msg("can't deliver comment")
					}
				}
			}
		}
	})
	return nil
}

func (r *CommentRouter) Stop() error {
	r.tomb.Kill(nil)
	r.tomb.Wait()
	for _, sender := range r.senders {
		sender.Stop()
	}
	return nil
}
