package email

import (
	"fmt"

	"github.com/AlexAkulov/reportfox"

	"github.com/facebookgo/muster"
)

type digestData struct {
	Comments []reportfox.Comment
	Total    int
	Highest  string
}

func (s *Sender) digestBatchMaker() muster.Batch {
	return &digestBatch{Sender: s}
}

type digestBatch struct {
	Sender   *Sender
	Comments []reportfox.Comment
	Highest  reportfox.RiskLevel
	Total    int
}

func (b *digestBatch) Add(item interface{}) {
	comment, ok := item.(reportfox.Comment)
	if !ok {
		return
	}
	b.Comments = append(b.Comments, comment)
	b.Total += comment.Counts.Total()
	if comment.Risk > b.Highest {
		b.Highest = comment.Risk
	}
}

func (b *digestBatch) Fire(notifier muster.Notifier) {
	defer notifier.Done()
	if len(b.Comments) < 1 {
		return
	}
	if !b.Sender.isOkRecipient(b.Sender.Recipient) {
		return
	}
	messageData := digestData{
		Comments: b.Comments,
		Total:    b.Total,
		Highest:  b.Highest.String(),
	}
	err := b.Sender.sendMessage(b.Sender.Recipient, getDigestSubject(messageData), messageData)
	if err != nil {
		b.Sender.Log.Error().Str("error", err.Error()).Msg("can't send email")
	}
}

func getDigestSubject(messageData digestData) string {
	if len(messageData.Comments) == 1 {
		return fmt.Sprintf("Security scan: %s risk, %d findings", messageData.Highest, messageData.Total)
	}
	return fmt.Sprintf("Security scan: %s risk, %d findings in %d reports", messageData.Highest, messageData.Total, len(messageData.Comments))
}
