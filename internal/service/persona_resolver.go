package service

import (
	"strings"

	"persona-llm/internal/domain"
)

// PersonaResolver normaliza un registro de persona a un PersonaProfile.
// Lookup de tablas + merge superficial; sin red ni I/O.
type PersonaResolver struct{}

// DefaultPersonaResolver permite uso directo sin instanciar.
var DefaultPersonaResolver = PersonaResolver{}

// Resolve respeta los registros enhanced tal cual y sintetiza defaults para
// los crudos: formalidad casual, respuestas cortas, emoji moderado y el set
// de expresiones por defecto.
func (PersonaResolver) Resolve(record domain.PersonaRecord) domain.PersonaProfile {
	profile := domain.PersonaProfile{
		Name:      record.Name,
		Age:       record.Age,
		MBTI:      normalizeMBTI(record.MBTI),
		Job:       record.Job,
		Interests: record.Interests,
	}

	if record.Kind == domain.PersonaRecordEnhanced && record.SpeechStyle != nil && record.Expressions != nil {
		profile.SpeechStyle = *record.SpeechStyle
		profile.Expressions = *record.Expressions
		return profile
	}

	profile.SpeechStyle = defaultSpeechStyle
	profile.Expressions = defaultExpressions
	return profile
}

// BehaviorFor devuelve el perfil conversacional del codigo MBTI.
// Codigos desconocidos o vacios caen en el perfil cauteloso.
func (PersonaResolver) BehaviorFor(mbti string) domain.MBTIBehavior {
	if behavior, ok := mbtiBehaviors[normalizeMBTI(mbti)]; ok {
		return behavior
	}
	return cautiousMBTIBehavior
}

func normalizeMBTI(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
