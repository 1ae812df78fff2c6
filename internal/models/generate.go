package models

// GenerateParams — параметры генерации тренировки из JSON-запроса.
// Все поля проверяются валидатором до запуска оркестратора; ошибки
// валидации возвращаются клиенту списком по полям.
type GenerateParams struct {
	Goal         string   `json:"goal" validate:"required,oneof=strength weightLoss endurance performance"`
	Duration     int      `json:"duration" validate:"required,oneof=15 30 45 60"` // Минуты
	Location     string   `json:"location" validate:"required,oneof=home gym"`
	Equipment    string   `json:"equipment" validate:"required,oneof=none dumbbells machines barbell"`
	Restrictions []string `json:"restrictions" validate:"omitempty,dive,oneof=knee back shoulder none"`
	Frequency    int      `json:"frequency" validate:"required,min=1,max=7"` // Тренировок в неделю
}

// HasRestriction сообщает, указано ли физическое ограничение name.
func (p GenerateParams) HasRestriction(name string) bool {
	for _, r := range p.Restrictions {
		if r == name {
			return true
		}
	}
	return false
}
