// internal/core/extraction/orderitems.go
package extraction

import (
	"fiscal-service/internal/domain"

	"github.com/google/uuid"
)

// toOrderItems converte os registros de todas as seções para a forma comum
// de obrigação consumida pela conciliação. Seções sem noção de período ou
// vencimento recebem marcadores fixos no lugar.
func (svc *service) toOrderItems(data domain.SituacaoFiscalData) []domain.OrderItem {
	var items []domain.OrderItem

	for _, d := range data.PendenciasDebito {
		items = append(items, svc.debitoToOrderItem(d, domain.TaxTypeDebito))
	}
	for _, d := range data.DebitosExigSuspensaSief {
		items = append(items, svc.debitoToOrderItem(d, domain.TaxTypeDebitoExigSuspensa))
	}
	for _, p := range data.ParcelamentosSiefpar {
		items = append(items, domain.OrderItem{
			ID:             uuid.NewString(),
			Code:           p.Parcelamento,
			TaxType:        domain.TaxTypeParcelamentoSiefpar,
			Cnpj:           p.Cnpj,
			StartPeriod:    "PARCELAMENTO",
			EndPeriod:      "PARCELAMENTO",
			OriginalValue:  p.ValorSuspenso,
			CurrentBalance: p.ValorSuspenso,
			Status:         "SUSPENSO",
			SourceFile:     p.SourceFile,
		})
	}
	for _, p := range data.ParcelamentosSipade {
		items = append(items, domain.OrderItem{
			ID:             uuid.NewString(),
			Code:           p.Processo,
			TaxType:        domain.TaxTypeParcelamentoSipade,
			Cnpj:           p.Cnpj,
			StartPeriod:    "PARCELAMENTO",
			EndPeriod:      "PARCELAMENTO",
			OriginalValue:  p.ValorSuspenso,
			CurrentBalance: p.ValorSuspenso,
			Status:         "SUSPENSO",
			SourceFile:     p.SourceFile,
		})
	}
	for _, p := range data.ProcessosFiscais {
		status := p.Situacao
		if status == "" {
			status = "SUSPENSO"
		}
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			Code:       p.Processo,
			TaxType:    domain.TaxTypeProcessoFiscal,
			Cnpj:       p.Cnpj,
			Status:     status,
			SourceFile: p.SourceFile,
		})
	}
	for _, d := range data.DebitosSicob {
		status := d.Situacao
		if status == "" {
			status = "SUSPENSO"
		}
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			Code:       d.Debito,
			TaxType:    domain.TaxTypeDebitoSicob,
			Cnpj:       d.Cnpj,
			Status:     status,
			SourceFile: d.SourceFile,
		})
	}
	for _, insc := range data.PendenciasInscricao {
		code := insc.Receita
		if code == "" {
			code = insc.Inscricao
		}
		status := insc.Situacao
		if status == "" {
			status = insc.TipoDevedor
		}
		items = append(items, domain.OrderItem{
			ID:          uuid.NewString(),
			Code:        code,
			TaxType:     domain.TaxTypeInscricaoSida,
			Cnpj:        insc.Cnpj,
			StartPeriod: insc.InscritoEm,
			EndPeriod:   insc.InscritoEm,
			Status:      status,
			SourceFile:  insc.SourceFile,
		})
	}
	for _, p := range data.PendenciasParcelamentoSispar {
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			Code:       p.Conta,
			TaxType:    domain.TaxTypePendenciaSispar,
			Cnpj:       p.Cnpj,
			Status:     "NEGOCIADO",
			SourceFile: p.SourceFile,
		})
	}

	return items
}

func (svc *service) debitoToOrderItem(d domain.Debito, taxType string) domain.OrderItem {
	if d.Receita == "SIMPLES NAC." {
		taxType = domain.TaxTypeSimplesNacional
	}
	return domain.OrderItem{
		ID:                      uuid.NewString(),
		Code:                    d.Receita,
		TaxType:                 taxType,
		Cnpj:                    d.Cnpj,
		Cno:                     d.Cno,
		StartPeriod:             d.PeriodoApuracao,
		EndPeriod:               d.PeriodoApuracao,
		DueDate:                 d.Vencimento,
		OriginalValue:           d.ValorOriginal,
		CurrentBalance:          d.SaldoDevedor,
		Fine:                    d.Multa,
		Interest:                d.Juros,
		SaldoDevedorConsolidado: d.SaldoDevedorConsolidado,
		Status:                  d.Situacao,
		SourceFile:              d.SourceFile,
	}
}
