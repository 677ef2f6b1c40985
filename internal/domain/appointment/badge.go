package appointment

type BadgeColor string

const (
	BadgeBlue  BadgeColor = "blue"
	BadgeGreen BadgeColor = "green"
	BadgeRed   BadgeColor = "red"
	BadgeGray  BadgeColor = "gray"
)

type Badge struct {
	Color BadgeColor `json:"color"`
	Label string     `json:"label"`
}

// BadgeFor maps a status to its badge. Unknown statuses get a gray badge
// labelled with the raw value.
func BadgeFor(s Status) Badge {
	switch s {
	case StatusNew:
		return Badge{Color: BadgeBlue, Label: "Новое"}
	case StatusConfirmed:
		return Badge{Color: BadgeGreen, Label: "Подтверждено"}
	case StatusCanceled:
		return Badge{Color: BadgeRed, Label: "Отменено"}
	default:
		return Badge{Color: BadgeGray, Label: string(s)}
	}
}
