package models

// Exercise — одно упражнение в меню тренировки. Повторы и отдых хранятся
// строками: помимо счёта повторов встречаются длительности вроде "30秒".
type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Rest  string `json:"rest"`
	Notes string `json:"notes,omitempty"`
}

// MenuSchemaVersion — текущая версия схемы сериализованного меню.
const MenuSchemaVersion = 1

// Menu — сгенерированное меню тренировки. Отдельно не хранится:
// сериализуется в поле Content записи WorkoutRecord.
type Menu struct {
	SchemaVersion   int        `json:"schema_version"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Warmup          []Exercise `json:"warmup"`
	Main            []Exercise `json:"main"`
	Cooldown        []Exercise `json:"cooldown"`
	TotalTime       int        `json:"total_time"` // Минуты
	CalorieEstimate int        `json:"calorie_estimate,omitempty"`
	Warnings        []string   `json:"warnings"`
}
