package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

const companiesFixture = `[
  {"id":"c1","cnpj":"1","razao_social":"Sem Contrato","is_contract_signed":false,"is_payment_active":false,"is_admin_verified":false},
  {"id":"c2","cnpj":"2","razao_social":"Sem Pagamento","is_contract_signed":true,"is_payment_active":false,"is_admin_verified":false},
  {"id":"c3","cnpj":"3","razao_social":"Aguardando Validação","is_contract_signed":true,"is_payment_active":true,"is_admin_verified":false},
  {"id":"c4","cnpj":"4","razao_social":"Ativa","is_contract_signed":true,"is_payment_active":true,"is_admin_verified":true}
]`

func companiesHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(companiesFixture))
	})
}

func TestAdminStatsDerivedFromCompanies(t *testing.T) {
	h := newTestClient(t, companiesHandler())

	stats, err := h.client.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats failed: %v", err)
	}
	if stats.TotalCompanies != 4 {
		t.Fatalf("expected 4 companies, got %d", stats.TotalCompanies)
	}
	if stats.ActiveCompanies != 2 {
		t.Fatalf("expected 2 active companies, got %d", stats.ActiveCompanies)
	}
	if stats.PendingApproval != 3 {
		t.Fatalf("expected 3 pending companies, got %d", stats.PendingApproval)
	}
}

func TestPendingQueueInfersOnboardingStep(t *testing.T) {
	h := newTestClient(t, companiesHandler())

	queue, err := h.client.PendingQueue(context.Background())
	if err != nil {
		t.Fatalf("PendingQueue failed: %v", err)
	}
	if len(queue) != 3 {
		t.Fatalf("expected 3 pending actions, got %d", len(queue))
	}

	steps := map[string]OnboardingStep{}
	for _, action := range queue {
		steps[action.CompanyID] = action.Step
	}
	if steps["c1"] != StepContract {
		t.Fatalf("expected c1 waiting on contract, got %q", steps["c1"])
	}
	if steps["c2"] != StepPayment {
		t.Fatalf("expected c2 waiting on payment, got %q", steps["c2"])
	}
	if steps["c3"] != StepValidation {
		t.Fatalf("expected c3 waiting on validation, got %q", steps["c3"])
	}
	if _, ok := steps["c4"]; ok {
		t.Fatal("verified companies must not appear in the queue")
	}
}

func TestSignContractFlipsOnlyThatFlag(t *testing.T) {
	var body map[string]any
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body failed: %v", err)
		}
		w.Write([]byte(`{"id":"c1","cnpj":"1","razao_social":"Alfa","is_contract_signed":true}`))
	}))

	company, err := h.client.SignContract(context.Background(), "c1")
	if err != nil {
		t.Fatalf("SignContract failed: %v", err)
	}
	if !company.ContractSigned {
		t.Fatal("expected contract flag set in response")
	}
	if len(body) != 1 {
		t.Fatalf("expected a single-field change set, got %v", body)
	}
	if signed, _ := body["is_contract_signed"].(bool); !signed {
		t.Fatalf("expected is_contract_signed true, got %v", body)
	}
}
