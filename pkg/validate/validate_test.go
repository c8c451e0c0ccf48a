package validate

import (
	"testing"

	"github.com/goliatone/go-intake/pkg/model"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.domain.org", " padded@mail.io "}
	for _, address := range valid {
		if !ValidEmail(address) {
			t.Fatalf("expected %q to be valid", address)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two@@at.com", "spa ce@mail.io"}
	for _, address := range invalid {
		if ValidEmail(address) {
			t.Fatalf("expected %q to be invalid", address)
		}
	}
}

func TestCheckOptionalAlwaysPasses(t *testing.T) {
	field := model.Field{ID: "notes", Kind: model.KindLongText, Required: false}

	if err := Check(field, nil); err != nil {
		t.Fatalf("optional unanswered: %v", err)
	}
	empty := model.TextValue(model.KindLongText, "   ")
	if err := Check(field, &empty); err != nil {
		t.Fatalf("optional blank: %v", err)
	}
}

func TestCheckRequiredText(t *testing.T) {
	field := model.Field{ID: "goal", Kind: model.KindShortText, Required: true, MaxLength: 10}

	if err := Check(field, nil); err == nil {
		t.Fatal("expected unanswered required field to fail")
	}

	blank := model.TextValue(model.KindShortText, "   ")
	if err := Check(field, &blank); err == nil {
		t.Fatal("expected whitespace-only answer to fail")
	}

	long := model.TextValue(model.KindShortText, "this is far too long")
	if err := Check(field, &long); err == nil {
		t.Fatal("expected over-length answer to fail")
	}

	ok := model.TextValue(model.KindShortText, "fine")
	if err := Check(field, &ok); err != nil {
		t.Fatalf("expected answer to pass: %v", err)
	}
}

func TestCheckEmailShape(t *testing.T) {
	field := model.Field{ID: "email", Kind: model.KindEmail, Required: true}

	bad := model.TextValue(model.KindEmail, "not-an-email")
	if err := Check(field, &bad); err == nil {
		t.Fatal("expected malformed email to fail")
	}

	good := model.TextValue(model.KindEmail, "lead@example.com")
	if err := Check(field, &good); err != nil {
		t.Fatalf("expected email to pass: %v", err)
	}
}

func TestCheckYesNoBothAnswersSatisfy(t *testing.T) {
	field := model.Field{ID: "multilingual", Kind: model.KindYesNo, Required: true}

	yes := model.YesNoValue(true)
	no := model.YesNoValue(false)
	if err := Check(field, &yes); err != nil {
		t.Fatalf("true should satisfy: %v", err)
	}
	if err := Check(field, &no); err != nil {
		t.Fatalf("false should satisfy: %v", err)
	}
	if err := Check(field, nil); err == nil {
		t.Fatal("unanswered yes_no should fail")
	}
}

func TestCheckConsentRequiresTrue(t *testing.T) {
	field := model.Field{ID: "consent", Kind: model.KindConsent, Required: true}

	declined := model.ConsentValue(false)
	if err := Check(field, &declined); err == nil {
		t.Fatal("consent=false must not satisfy")
	}

	granted := model.ConsentValue(true)
	if err := Check(field, &granted); err != nil {
		t.Fatalf("consent=true should satisfy: %v", err)
	}
}

func TestCheckMultiSelectNeedsOne(t *testing.T) {
	field := model.Field{
		ID: "kpis", Kind: model.KindMultiSelect, Required: true,
		Options: []string{"A", "B"},
	}

	none := model.MultiValue()
	if err := Check(field, &none); err == nil {
		t.Fatal("empty multi_select should fail")
	}
	one := model.MultiValue("A")
	if err := Check(field, &one); err != nil {
		t.Fatalf("single selection should pass: %v", err)
	}
}

func TestCheckContactBundle(t *testing.T) {
	field := model.Field{ID: "contact", Kind: model.KindContact, Required: true}

	partial := model.ContactValue(model.Contact{FullName: "Ada", Email: "ada@example.com"})
	if err := Check(field, &partial); err == nil {
		t.Fatal("partial contact should fail")
	}

	full := model.ContactValue(model.Contact{
		FullName: "Ada", Email: "ada@example.com", Company: "Example", Phone: "1",
	})
	if err := Check(field, &full); err != nil {
		t.Fatalf("complete contact should pass: %v", err)
	}
}

func TestCheckScalePresenceOnly(t *testing.T) {
	field := model.Field{ID: "seo", Kind: model.KindScale, Required: true, Min: 1, Max: 7}

	if err := Check(field, nil); err == nil {
		t.Fatal("unanswered scale should fail")
	}
	answered := model.ScaleValue(4)
	if err := Check(field, &answered); err != nil {
		t.Fatalf("answered scale should pass: %v", err)
	}
}

func TestCheckLinksNeedsOneEntry(t *testing.T) {
	field := model.Field{ID: "inspiration", Kind: model.KindLinks, Required: true}

	blanks := model.LinksValue("", "   ")
	if err := Check(field, &blanks); err == nil {
		t.Fatal("all-blank link list should fail")
	}
	one := model.LinksValue("https://example.com")
	if err := Check(field, &one); err != nil {
		t.Fatalf("one link should pass: %v", err)
	}
}
