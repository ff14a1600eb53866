package service

import (
	"errors"
	"io/fs"

	"github.com/nurpe/supply-contracts/internal/storage"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is the user-facing outcome of a save or load.
type Notice struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

func saveNotice(err error) Notice {
	switch {
	case err == nil:
		return Notice{Severity: SeverityInfo, Title: "Успіх", Message: "Дані успішно збережені!"}
	case errors.Is(err, storage.ErrNoData):
		return Notice{
			Severity: SeverityWarning,
			Title:    "Попередження",
			Message:  "Контракти, замовники та інженери відсутні. Немає даних для збереження.",
		}
	default:
		return Notice{Severity: SeverityError, Title: "Помилка", Message: "Помилка під час збереження даних: " + err.Error()}
	}
}

func loadNotice(err error) Notice {
	switch {
	case err == nil:
		return Notice{Severity: SeverityInfo, Title: "Успіх", Message: "Дані успішно завантажені!"}
	case errors.Is(err, storage.ErrMissingDirectory), errors.Is(err, fs.ErrNotExist):
		return Notice{
			Severity: SeverityWarning,
			Title:    "Попередження",
			Message:  "Файли або папка з даними не знайдені. Будь ласка, спершу збережіть дані.",
		}
	default:
		return Notice{Severity: SeverityError, Title: "Помилка", Message: "Помилка під час завантаження даних: " + err.Error()}
	}
}
