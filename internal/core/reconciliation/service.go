// internal/core/reconciliation/service.go
package reconciliation

import (
	"fmt"
	"time"

	"fiscal-service/internal/domain"

	"github.com/google/uuid"
	"github.com/schollz/closestmatch"
	"go.uber.org/zap"
)

const EPSILON = 0.01

// Service define o contrato da conciliação entre obrigações e pagamentos.
type Service interface {
	// Reconcile casa cada obrigação com o primeiro pagamento de chave
	// igual, anota discrepâncias e devolve os pagamentos sem dono como
	// registros órfãos. Invariante: len(resultado) == len(obrigações) +
	// len(órfãos).
	Reconcile(obligations []domain.OrderItem, payments []domain.DarfItem) []domain.UnifiedRecord
}

type service struct {
	logger *zap.Logger
}

// NewService cria um novo serviço de conciliação.
func NewService(logger *zap.Logger) Service {
	return &service{logger: logger}
}

func (svc *service) Reconcile(obligations []domain.OrderItem, payments []domain.DarfItem) []domain.UnifiedRecord {
	result := make([]domain.UnifiedRecord, 0, len(obligations)+len(payments))

	// Lista de trabalho: cada pagamento é consumido por no máximo uma
	// obrigação, na ordem de entrada (primeira chave igual vence).
	working := make([]domain.DarfItem, len(payments))
	copy(working, payments)

	obligationKeys := make([]string, 0, len(obligations))

	for _, ob := range obligations {
		key := ObligationKey(ob)
		obligationKeys = append(obligationKeys, key)

		matched := -1
		for idx, pay := range working {
			if PaymentKey(pay) == key {
				matched = idx
				break
			}
		}

		if matched == -1 {
			result = append(result, domain.UnifiedRecord{
				OrderItem:        ob,
				PaymentStatus:    domain.StatusUnpaid,
				DiscrepancyNotes: []string{},
			})
			continue
		}

		pay := working[matched]
		working = append(working[:matched], working[matched+1:]...)
		result = append(result, svc.mergePayment(ob, pay))
	}

	// Pagamentos restantes viram registros órfãos.
	var cm *closestmatch.ClosestMatch
	if len(working) > 0 && len(obligationKeys) > 0 {
		cm = closestmatch.New(obligationKeys, []int{3, 4})
	}
	for _, pay := range working {
		key := PaymentKey(pay)
		if cm != nil {
			svc.logger.Info("Pagamento órfão, obrigação de chave mais próxima registrada para diagnóstico",
				zap.String("chave", key),
				zap.String("maisProxima", cm.Closest(key)))
		} else {
			svc.logger.Info("Pagamento órfão sem obrigações para comparar", zap.String("chave", key))
		}
		result = append(result, svc.orphanRecord(pay))
	}

	return result
}

// mergePayment funde o pagamento na obrigação. Nos campos em comum o valor
// do pagamento prevalece; os valores fiscais usados nas notas de
// discrepância são lidos antes da fusão.
func (svc *service) mergePayment(ob domain.OrderItem, pay domain.DarfItem) domain.UnifiedRecord {
	notes := []string{}

	fiscalAmount := ob.OriginalValue
	if fiscalAmount == 0 {
		fiscalAmount = ob.SaldoDevedorConsolidado
	}
	paidAmount := pay.Total
	if paidAmount == 0 {
		paidAmount = pay.Principal
	}
	if fiscalAmount > 0 && paidAmount > 0 && abs(fiscalAmount-paidAmount) > EPSILON {
		notes = append(notes, fmt.Sprintf("Amount mismatch: Fiscal %.2f, Paid %.2f.", fiscalAmount, paidAmount))
	}

	if due, ok := parseISODate(ob.DueDate); ok {
		if paidAt, ok := parseISODate(pay.DataArrecadacao); ok && paidAt.After(due) {
			notes = append(notes, "Paid late.")
		}
	}

	unified := domain.UnifiedRecord{
		OrderItem:        ob,
		PaymentCode:      pay.Codigo,
		PaymentPeriod:    pay.PeriodoApuracao,
		PaymentDueDate:   brDateToISO(pay.Vencimento),
		PaymentDate:      pay.DataArrecadacao,
		PaidPrincipal:    pay.Principal,
		PaidFine:         pay.Multa,
		PaidInterest:     pay.Juros,
		PaidTotal:        pay.Total,
		PaymentSource:    pay.SourceFile,
		PaymentStatus:    domain.StatusPaid,
		DiscrepancyNotes: notes,
	}
	if pay.Multa > 0 {
		unified.Fine = pay.Multa
	}
	if pay.Juros > 0 {
		unified.Interest = pay.Juros
	}
	if iso := brDateToISO(pay.Vencimento); iso != "" {
		unified.DueDate = iso
	}
	return unified
}

// orphanRecord monta o registro de um pagamento sem obrigação. O lado da
// obrigação fica zerado, só a identificação do contribuinte é mantida.
func (svc *service) orphanRecord(pay domain.DarfItem) domain.UnifiedRecord {
	return domain.UnifiedRecord{
		OrderItem: domain.OrderItem{
			ID:   uuid.NewString(),
			Cnpj: pay.Cnpj,
		},
		PaymentCode:      pay.Codigo,
		PaymentPeriod:    pay.PeriodoApuracao,
		PaymentDueDate:   brDateToISO(pay.Vencimento),
		PaymentDate:      pay.DataArrecadacao,
		PaidPrincipal:    pay.Principal,
		PaidFine:         pay.Multa,
		PaidInterest:     pay.Juros,
		PaidTotal:        pay.Total,
		PaymentSource:    pay.SourceFile,
		PaymentStatus:    domain.StatusOrphanedPayment,
		DiscrepancyNotes: []string{},
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func parseISODate(value string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// brDateToISO converte DD/MM/YYYY para YYYY-MM-DD; passa adiante valores
// já em ISO e devolve vazio para o resto.
func brDateToISO(value string) string {
	if t, err := time.Parse("02/01/2006", value); err == nil {
		return t.Format("2006-01-02")
	}
	if _, ok := parseISODate(value); ok {
		return value
	}
	return ""
}
