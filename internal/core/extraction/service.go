// internal/core/extraction/service.go
package extraction

import (
	"fiscal-service/internal/domain"

	"go.uber.org/zap"
)

// Service define o contrato para extração de documentos fiscais.
type Service interface {
	// ExtractSituacaoFiscal processa o texto de um relatório de situação
	// fiscal e devolve os registros por seção mais a forma comum usada
	// pela conciliação.
	ExtractSituacaoFiscal(text string, sourceFile string) (domain.SituacaoFiscalData, []domain.OrderItem)
	// ExtractDarf processa o texto de um comprovante DARF.
	ExtractDarf(text string, sourceFile string) []domain.DarfItem
}

type service struct {
	logger *zap.Logger
}

// NewService cria um novo serviço de extração.
func NewService(logger *zap.Logger) Service {
	return &service{logger: logger}
}

func (svc *service) ExtractSituacaoFiscal(text string, sourceFile string) (domain.SituacaoFiscalData, []domain.OrderItem) {
	data := domain.SituacaoFiscalData{}
	if text == "" {
		svc.logger.Warn("Texto vazio recebido para extração de situação fiscal",
			zap.String("arquivo", sourceFile))
		return data, nil
	}

	lines := svc.preprocessText(text)
	sections := svc.segment(lines)
	svc.logger.Info("Seções reconhecidas no relatório",
		zap.Int("secoes", len(sections)), zap.String("arquivo", sourceFile))

	for _, sec := range sections {
		svc.extractSection(sec, sourceFile, &data)
	}

	return data, svc.toOrderItems(data)
}

// extractSection despacha a seção para a estratégia do seu tipo. Pânico em
// um extrator vira zero registros para aquela seção, nunca derruba o
// documento inteiro.
func (svc *service) extractSection(sec domain.Section, sourceFile string, data *domain.SituacaoFiscalData) {
	defer func() {
		if r := recover(); r != nil {
			svc.logger.Error("Extrator de seção falhou, seção descartada",
				zap.String("secao", string(sec.Kind)),
				zap.String("arquivo", sourceFile),
				zap.Any("motivo", r))
		}
	}()

	switch sec.Kind {
	case domain.SectionPendenciaDebito:
		data.PendenciasDebito = append(data.PendenciasDebito, svc.extractPendenciasDebito(sec, sourceFile)...)
	case domain.SectionDebitoExigSuspensa:
		data.DebitosExigSuspensaSief = append(data.DebitosExigSuspensaSief, svc.extractDebitosExigSuspensa(sec, sourceFile)...)
	case domain.SectionParcelamentoSiefpar:
		data.ParcelamentosSiefpar = append(data.ParcelamentosSiefpar, svc.extractParcelamentosSiefpar(sec, sourceFile)...)
	case domain.SectionParcelamentoSipade:
		data.ParcelamentosSipade = append(data.ParcelamentosSipade, svc.extractParcelamentosSipade(sec, sourceFile)...)
	case domain.SectionProcessoFiscal:
		data.ProcessosFiscais = append(data.ProcessosFiscais, svc.extractProcessosFiscais(sec, sourceFile)...)
	case domain.SectionDebitoSicob:
		data.DebitosSicob = append(data.DebitosSicob, svc.extractDebitosSicob(sec, sourceFile)...)
	case domain.SectionInscricaoSida:
		data.PendenciasInscricao = append(data.PendenciasInscricao, svc.extractInscricoesSida(sec, sourceFile)...)
	case domain.SectionPendenciaSispar:
		data.PendenciasParcelamentoSispar = append(data.PendenciasParcelamentoSispar, svc.extractPendenciasSispar(sec, sourceFile)...)
	default:
		svc.logger.Warn("Seção sem extrator associado", zap.String("secao", string(sec.Kind)))
	}
}

func (svc *service) ExtractDarf(text string, sourceFile string) (items []domain.DarfItem) {
	if text == "" {
		svc.logger.Warn("Texto vazio recebido para extração de DARF",
			zap.String("arquivo", sourceFile))
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			svc.logger.Error("Extração de DARF falhou",
				zap.String("arquivo", sourceFile), zap.Any("motivo", r))
			items = nil
		}
	}()

	lines := svc.preprocessText(text)
	items = svc.extractDarfItems(lines, sourceFile)
	svc.logger.Info("Extração de DARF finalizada",
		zap.Int("itens", len(items)), zap.String("arquivo", sourceFile))
	return items
}
