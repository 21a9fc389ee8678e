package notify

import (
	"bytes"
	"html/template"
	"log"

	"github.com/sura-dev/sura/internal/models"
)

// NGOContact is the contact block shared with the donor after acceptance.
type NGOContact struct {
	Name    string
	Email   string
	Contact string
}

// DonorInfo identifies the donating restaurant in NGO-facing email. It is the
// registered profile when one exists, otherwise the snapshot from the
// donation record.
type DonorInfo struct {
	Name     string
	Location string
	Email    string
	Contact  string
}

var assignmentTmpl = template.Must(template.New("assignment").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #f8fafc; padding: 20px; text-align: center; border-bottom: 3px solid #16a34a;">
    <h1 style="color: #16a34a; margin: 0;">SURA Connect</h1>
    <p style="margin: 5px 0 0; color: #64748b;">Emergency Food Rescue Alert</p>
  </div>
  <div style="padding: 30px;">
    <h2 style="margin-top: 0; color: #0f172a;">New Food Pickup Assigned to {{.NGOName}}</h2>
    <p>Hello {{.NGOName}} Team,</p>
    <p>Our routing system has matched your NGO as the responder for a new surplus food donation in your vicinity.{{if .Forwarded}} (Forwarded due to a previous decline.){{end}}</p>
    <table style="width: 100%; border-collapse: collapse; margin-top: 20px; background: #f1f5f9; border-radius: 8px;">
      <tr><td style="padding: 12px 15px; font-weight: bold; width: 35%;">Restaurant</td><td style="padding: 12px 15px;">{{.Donor.Name}}</td></tr>
      <tr><td style="padding: 12px 15px; font-weight: bold;">Location</td><td style="padding: 12px 15px;">{{.Donor.Location}}</td></tr>
      <tr><td style="padding: 12px 15px; font-weight: bold;">Food Type</td><td style="padding: 12px 15px;">{{.Donation.FoodType}}</td></tr>
      <tr><td style="padding: 12px 15px; font-weight: bold;">Quantity</td><td style="padding: 12px 15px;">{{.Donation.Quantity}} meals</td></tr>
      <tr><td style="padding: 12px 15px; font-weight: bold;">Expiry Priority</td><td style="padding: 12px 15px; color: #dc2626; font-weight: bold;">{{.Donation.Expiry}}</td></tr>
      <tr><td style="padding: 12px 15px; font-weight: bold;">Contact Details</td><td style="padding: 12px 15px;">Phone: {{.Donor.Contact}}<br/>Email: {{.Donor.Email}}</td></tr>
      <tr><td style="padding: 12px 15px; font-weight: bold;">Notes</td><td style="padding: 12px 15px;">{{if .Donation.Notes}}{{.Donation.Notes}}{{else}}None provided{{end}}</td></tr>
    </table>
    <p>Please confirm your decision:</p>
    <div style="margin-top: 20px;">
      <a href="{{.BaseURL}}/api/respond?decision=accept&requestId={{.Donation.ID}}" style="background: #16a34a; color: white; padding: 12px 20px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block; margin-right: 10px;">Accept Pickup</a>
      <a href="{{.BaseURL}}/api/respond?decision=decline&requestId={{.Donation.ID}}" style="background: #dc2626; color: white; padding: 12px 20px; text-decoration: none; border-radius: 5px; font-weight: bold; display: inline-block;">Decline</a>
    </div>
  </div>
</body>
</html>`))

var acceptedTmpl = template.Must(template.New("accepted").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #f8fafc; padding: 20px; text-align: center; border-bottom: 3px solid #16a34a;">
    <h1 style="color: #16a34a; margin: 0;">SURA Connect</h1>
    <p style="margin: 5px 0 0; color: #64748b;">Donation Status Update</p>
  </div>
  <div style="padding: 30px;">
    <h2 style="margin-top: 0; color: #0f172a;">Great News! Your Donation was Accepted!</h2>
    <p>Hello {{.Donation.Restaurant}},</p>
    <p>The NGO <strong>{{.NGO.Name}}</strong> has officially accepted your surplus food donation request!</p>
    <div style="background: #f1f5f9; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h3 style="margin-top: 0; color: #16a34a;">Pickup Details</h3>
      <p><strong>Food:</strong> {{.Donation.FoodType}} ({{.Donation.Quantity}} meals)</p>
      <p><strong>Location:</strong> {{.Donation.Location}}</p>
      <hr style="border: none; border-top: 1px solid #cbd5e1; margin: 10px 0;"/>
      <h3 style="margin-top: 0; color: #0f172a;">NGO Contact Info</h3>
      <p><strong>NGO:</strong> {{.NGO.Name}}</p>
      <p><strong>Phone:</strong> {{.NGO.Contact}}</p>
      <p><strong>Email:</strong> {{.NGO.Email}}</p>
    </div>
    <p>Please ensure the food is packaged and ready for their volunteers to pick up before the expiry time.</p>
    <p style="color: #64748b; font-size: 14px; margin-top: 30px;">Thank you for your contribution to reducing food waste!</p>
  </div>
</body>
</html>`))

var exhaustedTmpl = template.Must(template.New("exhausted").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #f8fafc; padding: 20px; text-align: center; border-bottom: 3px solid #dc2626;">
    <h1 style="color: #dc2626; margin: 0;">SURA Connect</h1>
    <p style="margin: 5px 0 0; color: #64748b;">Donation Status Update</p>
  </div>
  <div style="padding: 30px;">
    <h2 style="margin-top: 0; color: #0f172a;">No NGOs Available</h2>
    <p>Hello {{.Donation.Restaurant}},</p>
    <p>Unfortunately every NGO in <strong>{{.Donation.Location}}</strong> has been contacted about your donation of {{.Donation.FoodType}} ({{.Donation.Quantity}} meals) and none is able to pick it up.</p>
    <p>We are sorry we could not find a match this time. Please consider submitting again later.</p>
  </div>
</body>
</html>`))

type assignmentData struct {
	NGOName   string
	Donor     DonorInfo
	Donation  models.Donation
	BaseURL   string
	Forwarded bool
}

type acceptedData struct {
	NGO      NGOContact
	Donation models.Donation
}

type exhaustedData struct {
	Donation models.Donation
}

// AssignmentEmail renders the pickup request sent to a newly assigned NGO.
// Forwarded marks re-routing after a decline.
func AssignmentEmail(ngoName string, donor DonorInfo, donation models.Donation, baseURL string, forwarded bool) string {
	return render(assignmentTmpl, assignmentData{
		NGOName:   ngoName,
		Donor:     donor,
		Donation:  donation,
		BaseURL:   baseURL,
		Forwarded: forwarded,
	})
}

// AcceptedEmail renders the donor confirmation with the NGO's contact block.
func AcceptedEmail(donation models.Donation, ngo NGOContact) string {
	return render(acceptedTmpl, acceptedData{NGO: ngo, Donation: donation})
}

// ExhaustedEmail renders the donor notice that no NGO could be found.
func ExhaustedEmail(donation models.Donation) string {
	return render(exhaustedTmpl, exhaustedData{Donation: donation})
}

func render(tmpl *template.Template, data interface{}) string {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Failed to render %s email: %v", tmpl.Name(), err)
		return ""
	}

	return buf.String()
}
