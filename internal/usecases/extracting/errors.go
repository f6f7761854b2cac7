package extracting

import (
	"errors"
	"fmt"
	"time"
)

// ErrTableAlreadyExists é retornado pelo warehouse quando uma criação de
// tabela perde a corrida para outra tarefa concorrente. O TableManager
// trata este erro re-verificando o schema da tabela existente.
var ErrTableAlreadyExists = errors.New("tabela já existe no warehouse")

// InvalidRangeError indica uma janela de datas inválida (início > fim)
type InvalidRangeError struct {
	StartDate time.Time
	EndDate   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(
		"intervalo de datas inválido: start_date %s posterior a end_date %s",
		e.StartDate.Format(time.DateOnly),
		e.EndDate.Format(time.DateOnly),
	)
}

// AuthenticationError indica falha de autenticação no upstream.
// É terminal para a conta inteira e nunca é retentado.
type AuthenticationError struct {
	AccountID string
	Err       error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("falha de autenticação no upstream para a conta %s: %v", e.AccountID, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RateLimitError indica limite de requisições excedido no upstream.
// Retentável com backoff exponencial.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("limite de requisições do upstream excedido: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// UpstreamUnavailableError indica indisponibilidade transitória do upstream.
// Retentável com backoff exponencial.
type UpstreamUnavailableError struct {
	Err error
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("upstream indisponível: %v", e.Err)
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }

// QuotaExceededError indica cota diária/horária esgotada no upstream.
// Terminal: retentar não ajuda até a cota renovar.
type QuotaExceededError struct {
	Err error
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("cota do upstream esgotada: %v", e.Err)
}

func (e *QuotaExceededError) Unwrap() error { return e.Err }

// SchemaMismatchError indica divergência entre o schema existente de uma
// tabela e o schema esperado pelo catálogo. Sempre terminal: o schema de
// produção nunca é alterado automaticamente.
type SchemaMismatchError struct {
	TableName string
	Detail    string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema divergente na tabela %s: %s", e.TableName, e.Detail)
}

// WriteError indica falha de escrita no warehouse após o esgotamento do
// orçamento de retentativas do Loader
type WriteError struct {
	TableName string
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("falha ao escrever na tabela %s: %v", e.TableName, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsRetryable classifica um erro de tarefa como retentável (rate limit e
// indisponibilidade transitória) ou terminal (autenticação, cota, schema
// divergente, configuração)
func IsRetryable(err error) bool {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}

	var unavailableErr *UpstreamUnavailableError
	return errors.As(err, &unavailableErr)
}
