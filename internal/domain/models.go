// internal/domain/models.go
package domain

// SectionKind identifica o tipo de seção reconhecida no relatório de
// situação fiscal ou no comprovante DARF.
type SectionKind string

// Constants for the recognized section kinds.
const (
	SectionPendenciaDebito     SectionKind = "PENDENCIA_DEBITO_SIEF"
	SectionDebitoExigSuspensa  SectionKind = "DEBITO_EXIG_SUSPENSA_SIEF"
	SectionParcelamentoSiefpar SectionKind = "PARCELAMENTO_SIEFPAR"
	SectionParcelamentoSipade  SectionKind = "PARCELAMENTO_SIPADE"
	SectionProcessoFiscal      SectionKind = "PROCESSO_FISCAL"
	SectionDebitoSicob         SectionKind = "DEBITO_SICOB"
	SectionInscricaoSida       SectionKind = "INSCRICAO_SIDA"
	SectionPendenciaSispar     SectionKind = "PENDENCIA_SISPAR"
	SectionComposicaoDarf      SectionKind = "COMPOSICAO_DARF"
)

// Section é um trecho contíguo de linhas normalizadas pertencente a uma
// única seção reconhecida. As seções nunca se sobrepõem.
type Section struct {
	Kind  SectionKind
	Lines []string
}

// Debito representa um débito declarado nas seções "Pendência - Débito (SIEF)"
// e "Débito com Exigibilidade Suspensa (SIEF)". CNO só aparece na segunda.
type Debito struct {
	Cnpj                    string  `json:"cnpj"`
	Cno                     string  `json:"cno,omitempty"`
	Receita                 string  `json:"receita"`
	PeriodoApuracao         string  `json:"periodo_apuracao"`
	Vencimento              string  `json:"vencimento"`
	ValorOriginal           float64 `json:"valor_original"`
	SaldoDevedor            float64 `json:"saldo_devedor"`
	Multa                   float64 `json:"multa"`
	Juros                   float64 `json:"juros"`
	SaldoDevedorConsolidado float64 `json:"saldo_devedor_consolidado"`
	Situacao                string  `json:"situacao"`
	SourceFile              string  `json:"source_file,omitempty"`
}

// ParcelamentoSiefpar representa um parcelamento com exigibilidade suspensa (SIEFPAR).
type ParcelamentoSiefpar struct {
	Cnpj          string  `json:"cnpj"`
	Parcelamento  string  `json:"parcelamento"`
	ValorSuspenso float64 `json:"valor_suspenso"`
	Modalidade    string  `json:"modalidade"`
	SourceFile    string  `json:"source_file,omitempty"`
}

// ParcelamentoSipade representa um parcelamento com exigibilidade suspensa (SIPADE).
type ParcelamentoSipade struct {
	Cnpj          string  `json:"cnpj"`
	Processo      string  `json:"processo"`
	ValorSuspenso float64 `json:"valor_suspenso"`
	Modalidade    string  `json:"modalidade"`
	SourceFile    string  `json:"source_file,omitempty"`
}

// ProcessoFiscal representa um processo fiscal com exigibilidade suspensa (SIEF).
type ProcessoFiscal struct {
	Cnpj        string `json:"cnpj"`
	Processo    string `json:"processo"`
	Situacao    string `json:"situacao"`
	Localizacao string `json:"localizacao,omitempty"`
	SourceFile  string `json:"source_file,omitempty"`
}

// DebitoSicob representa um débito controlado pelo SICOB.
type DebitoSicob struct {
	Cnpj       string `json:"cnpj"`
	Debito     string `json:"debito"`
	Descricao  string `json:"descricao"`
	Situacao   string `json:"situacao"`
	SourceFile string `json:"source_file,omitempty"`
}

// InscricaoSida representa uma inscrição em dívida ativa (SIDA).
type InscricaoSida struct {
	Cnpj             string `json:"cnpj"`
	Inscricao        string `json:"inscricao"`
	Receita          string `json:"receita"`
	InscritoEm       string `json:"inscrito_em"`
	AjuizadoEm       string `json:"ajuizado_em"`
	Processo         string `json:"processo"`
	TipoDevedor      string `json:"tipo_devedor"`
	DevedorPrincipal string `json:"devedor_principal"`
	Situacao         string `json:"situacao"`
	SourceFile       string `json:"source_file,omitempty"`
}

// PendenciaSispar representa uma pendência de parcelamento (SISPAR).
type PendenciaSispar struct {
	Cnpj       string `json:"cnpj"`
	Conta      string `json:"conta"`
	Descricao  string `json:"descricao"`
	Modalidade string `json:"modalidade"`
	SourceFile string `json:"source_file,omitempty"`
}

// SituacaoFiscalData agrega o resultado da extração de um relatório de
// situação fiscal, uma lista por seção.
type SituacaoFiscalData struct {
	PendenciasDebito             []Debito              `json:"pendenciasDebito"`
	DebitosExigSuspensaSief      []Debito              `json:"debitosExigSuspensaSief"`
	ParcelamentosSiefpar         []ParcelamentoSiefpar `json:"parcelamentosSiefpar"`
	ParcelamentosSipade          []ParcelamentoSipade  `json:"parcelamentosSipade"`
	ProcessosFiscais             []ProcessoFiscal      `json:"processosFiscais"`
	DebitosSicob                 []DebitoSicob         `json:"debitosSicob"`
	PendenciasInscricao          []InscricaoSida       `json:"pendenciasInscricao"`
	PendenciasParcelamentoSispar []PendenciaSispar     `json:"pendenciasParcelamentoSispar"`
}

// DarfItem representa uma linha da "Composição do Documento de Arrecadação"
// de um comprovante DARF. Cnpj e DataArrecadacao valem para o documento
// inteiro e são carimbados em cada item.
type DarfItem struct {
	Cnpj            string  `json:"cnpj"`
	Codigo          string  `json:"codigo"`
	Denominacao     string  `json:"denominacao"`
	PeriodoApuracao string  `json:"periodo_apuracao"`
	Vencimento      string  `json:"vencimento"`
	Principal       float64 `json:"principal"`
	Multa           float64 `json:"multa"`
	Juros           float64 `json:"juros"`
	Total           float64 `json:"total"`
	DataArrecadacao string  `json:"data_arrecadacao"`
	SourceFile      string  `json:"source_file,omitempty"`
}

// OrderItem é a forma comum de obrigação usada pela conciliação: toda seção
// do relatório é convertida para esta estrutura.
type OrderItem struct {
	ID                      string  `json:"id"`
	Code                    string  `json:"code"`
	TaxType                 string  `json:"tax_type"`
	Cnpj                    string  `json:"cnpj"`
	Cno                     string  `json:"cno,omitempty"`
	StartPeriod             string  `json:"start_period"`
	EndPeriod               string  `json:"end_period"`
	DueDate                 string  `json:"due_date"`
	OriginalValue           float64 `json:"original_value"`
	CurrentBalance          float64 `json:"current_balance"`
	Fine                    float64 `json:"fine"`
	Interest                float64 `json:"interest"`
	SaldoDevedorConsolidado float64 `json:"saldo_devedor_consolidado"`
	Status                  string  `json:"status"`
	SourceFile              string  `json:"source_file,omitempty"`
}

// Tipos de tributo atribuídos aos OrderItems conforme a seção de origem.
const (
	TaxTypeSimplesNacional     = "SIMPLES_NACIONAL"
	TaxTypeDebito              = "DEBITO"
	TaxTypeDebitoExigSuspensa  = "DEBITO_EXIG_SUSPENSA_SIEF"
	TaxTypeParcelamentoSiefpar = "PARCELAMENTO_SIEFPAR"
	TaxTypeParcelamentoSipade  = "PARCELAMENTO_SIPADE"
	TaxTypeProcessoFiscal      = "PROCESSO_FISCAL"
	TaxTypeDebitoSicob         = "DEBITO_SICOB"
	TaxTypeInscricaoSida       = "PENDENCIA_INSCRICAO_SIDA"
	TaxTypePendenciaSispar     = "PENDENCIA_PARCELAMENTO_SISPAR"
)

// PaymentStatus define o resultado da conciliação de um registro.
type PaymentStatus string

// Constants for reconciliation outcomes.
const (
	StatusPaid            PaymentStatus = "Paid"
	StatusUnpaid          PaymentStatus = "Unpaid"
	StatusOrphanedPayment PaymentStatus = "OrphanedPayment"
)

// UnifiedRecord é o resultado da conciliação: uma obrigação com o pagamento
// casado (se houver), ou um pagamento órfão.
type UnifiedRecord struct {
	OrderItem
	PaymentCode      string        `json:"payment_code,omitempty"`
	PaymentPeriod    string        `json:"payment_period,omitempty"`
	PaymentDueDate   string        `json:"payment_due_date,omitempty"`
	PaymentDate      string        `json:"payment_date,omitempty"`
	PaidPrincipal    float64       `json:"paid_principal"`
	PaidFine         float64       `json:"paid_fine"`
	PaidInterest     float64       `json:"paid_interest"`
	PaidTotal        float64       `json:"paid_total"`
	PaymentSource    string        `json:"payment_source,omitempty"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	DiscrepancyNotes []string      `json:"discrepancy_notes"`
}
