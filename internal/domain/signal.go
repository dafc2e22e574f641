package domain

// Signal은 전략이 생성한 하나의 매매 결정을 담는 불변 값입니다.
// 시그널은 해당 틱 처리 동안만 유효하며 저장되지 않습니다.
type Signal struct {
	Instrument Instrument
	Side       OrderSide
	Strength   float64
}

// NewSignal은 새로운 시그널을 생성합니다. strength가 0 이하이면 기본값 1.0을 사용합니다
func NewSignal(instrument Instrument, side OrderSide, strength float64) *Signal {
	if strength <= 0 {
		strength = 1.0
	}
	return &Signal{
		Instrument: instrument,
		Side:       side,
		Strength:   strength,
	}
}

// IsValid는 시그널이 유효한지 확인합니다
func (s *Signal) IsValid() bool {
	return s != nil && s.Side.IsValid() && s.Instrument.Symbol != ""
}
