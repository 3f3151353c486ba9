package lock

import "context"

// SlotLocker serializa a seção crítica de agendamento por horário. A
// transação com UPDATE condicional já garante a correção; o lock evita
// que duas requisições disputem a mesma linha.
type SlotLocker interface {
	WithSlotLock(ctx context.Context, slotID uint, fn func(ctx context.Context) error) error
}

// Noop é usado em testes e quando o redis está desligado.
type Noop struct{}

func (Noop) WithSlotLock(ctx context.Context, _ uint, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
