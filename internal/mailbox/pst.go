package mailbox

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	pst "github.com/mooijtech/go-pst/v6/pkg"
	"github.com/mooijtech/go-pst/v6/pkg/properties"

	"mailmeter/internal/core"
)

// ParsePST extracts mail records from a PST export. The binary format is
// delegated entirely to go-pst; this walks every folder and keeps sender
// name, subject and delivery time.
func ParsePST(data []byte) ([]core.MailRecord, error) {
	pstFile, err := pst.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open pst: %w", err)
	}
	defer pstFile.Cleanup()

	var records []core.MailRecord
	err = pstFile.WalkFolders(func(folder *pst.Folder) error {
		messageIterator, err := folder.GetMessageIterator()
		if errors.Is(err, pst.ErrMessagesNotFound) {
			return nil
		} else if err != nil {
			return fmt.Errorf("folder %s: %w", folder.Name, err)
		}

		for messageIterator.Next() {
			message := messageIterator.Value()
			msgProps, ok := message.Properties.(*properties.Message)
			if !ok {
				continue
			}
			rec := core.MailRecord{
				Sender:  msgProps.GetSenderName(),
				Subject: msgProps.GetSubject(),
			}
			if rec.Validate() != nil {
				continue
			}
			// Delivery time is stored as UnixNano.
			if delivery := msgProps.GetMessageDeliveryTime(); delivery > 0 {
				rec.Date = time.Unix(0, delivery)
			}
			records = append(records, rec)
		}
		return messageIterator.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("walk pst folders: %w", err)
	}
	return records, nil
}
