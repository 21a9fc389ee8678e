package notify

import (
	"strings"
	"testing"

	"github.com/sura-dev/sura/internal/models"
)

func sampleDonation() models.Donation {
	return models.Donation{
		ID:         7,
		Restaurant: "A",
		Location:   "Tambaram",
		FoodType:   "Rice",
		Quantity:   50,
		Expiry:     "2h",
		Email:      "a@x.com",
	}
}

func TestAssignmentEmailCarriesRespondLinks(t *testing.T) {
	donor := DonorInfo{Name: "A", Location: "Tambaram", Email: "a@x.com", Contact: "9000000000"}

	body := AssignmentEmail("Helping Hands", donor, sampleDonation(), "http://localhost:3000", false)

	for _, want := range []string{
		"Helping Hands",
		"50 meals",
		"http://localhost:3000/api/respond?decision=accept&amp;requestId=7",
		"http://localhost:3000/api/respond?decision=decline&amp;requestId=7",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("assignment email missing %q", want)
		}
	}

	if strings.Contains(body, "Forwarded due to a previous decline") {
		t.Fatal("initial assignment must not mention forwarding")
	}
}

func TestAssignmentEmailMarksForwarding(t *testing.T) {
	donor := DonorInfo{Name: "A", Location: "Tambaram", Email: "a@x.com", Contact: "9000000000"}

	body := AssignmentEmail("Hope Home", donor, sampleDonation(), "http://localhost:3000", true)

	if !strings.Contains(body, "Forwarded due to a previous decline") {
		t.Fatal("forwarded assignment must mention the previous decline")
	}
}

func TestAcceptedEmailCarriesNGOContact(t *testing.T) {
	ngo := NGOContact{Name: "Helping Hands", Email: "hands@example.org", Contact: "9876543210"}

	body := AcceptedEmail(sampleDonation(), ngo)

	for _, want := range []string{"Helping Hands", "hands@example.org", "9876543210", "Rice"} {
		if !strings.Contains(body, want) {
			t.Fatalf("accepted email missing %q", want)
		}
	}
}

func TestExhaustedEmailNamesLocation(t *testing.T) {
	body := ExhaustedEmail(sampleDonation())

	if !strings.Contains(body, "Tambaram") {
		t.Fatal("exhaustion email must name the location")
	}
}
