package notifications

import (
	"bytes"
	"html/template"

	"github.com/trn-gabru/lafabrica/internal/inquiry"
)

const inquiryNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New contact inquiry</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Mobile:</strong> {{.Mobile}}</p>
  <p><strong>Interested in:</strong> {{.Category}}</p>
  <p><strong>Received:</strong> {{.CreatedAt.Format "02 Jan 2006 15:04"}}</p>
  <p><strong>ID:</strong> {{.ID}}</p>
</body>
</html>`

var inquiryNotificationTmpl = template.Must(template.New("inquiry_notification").Parse(inquiryNotificationTemplate))

func buildInquiryNotificationHTML(inq inquiry.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := inquiryNotificationTmpl.Execute(&buf, inq); err != nil {
		return "", err
	}
	return buf.String(), nil
}
