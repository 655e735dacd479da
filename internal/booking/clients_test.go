package booking

import (
	"context"
	"testing"

	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

func clientUpdateEmail(email string) repository.ClientUpdate {
	return repository.ClientUpdate{Email: &email}
}

func TestRegisterClientNormalizes(t *testing.T) {
	fx := newTestFixture()

	c, err := fx.engine.RegisterClient(context.Background(), "  joão da costa  ", " Joao.Costa@Example.COM ", "+351911111111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "João da Costa" {
		t.Fatalf("expected capitalized name, got %q", c.Name)
	}
	if c.Email != "joao.costa@example.com" {
		t.Fatalf("expected lowercase trimmed email, got %q", c.Email)
	}
	if c.ID == 0 {
		t.Fatal("expected persisted client to carry an id")
	}
}

func TestRegisterClientDuplicateEmail(t *testing.T) {
	fx := newTestFixture()

	// The fixture client already owns maria@example.com; case must not matter.
	_, err := fx.engine.RegisterClient(context.Background(), "Maria Impostora", "MARIA@EXAMPLE.COM", "+351922222222")
	assertValidationMessage(t, err, "Email já cadastrado")
}

func TestRegisterClientValidationFailures(t *testing.T) {
	fx := newTestFixture()

	cases := []struct {
		name, clientName, email, phone, want string
	}{
		{"short name", "A", "a@example.com", "+351911111111", "Nome deve ter pelo menos 2 caracteres"},
		{"bad email", "Ana Pires", "not-an-email", "+351911111111", "Email inválido"},
		{"bad phone", "Ana Pires", "ana@example.com", "123", "Número de telemóvel inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.engine.RegisterClient(context.Background(), tc.clientName, tc.email, tc.phone)
			assertValidationMessage(t, err, tc.want)
		})
	}
}

func TestLookupClientByEmailCaseInsensitive(t *testing.T) {
	fx := newTestFixture()

	c, err := fx.engine.LookupClientByEmail(context.Background(), " Maria@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != fx.clientID {
		t.Fatalf("expected client %d, got %d", fx.clientID, c.ID)
	}
}

func TestUpdateClientRejectsForeignEmail(t *testing.T) {
	fx := newTestFixture()

	other, err := fx.engine.RegisterClient(context.Background(), "Rui Gomes", "rui@example.com", "+351933333333")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	taken := "maria@example.com"
	_, err = fx.engine.UpdateClient(context.Background(), other.ID, clientUpdateEmail(taken))
	assertValidationMessage(t, err, "Email já cadastrado por outro cliente")

	// Re-submitting one's own email is fine.
	own := "RUI@example.com"
	updated, err := fx.engine.UpdateClient(context.Background(), other.ID, clientUpdateEmail(own))
	if err != nil {
		t.Fatalf("updating to own email failed: %v", err)
	}
	if updated.Email != "rui@example.com" {
		t.Fatalf("expected normalized email, got %q", updated.Email)
	}
}
