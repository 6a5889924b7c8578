package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// NoteIDPattern определяет допустимый формат идентификатора заметки,
// вводимого пользователем (полный id или префикс)
// Только латинские буквы, цифры, дефис и нижнее подчеркивание
var NoteIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	// MaxNoteIDLen максимальная длина id, принимаемая сервером
	MaxNoteIDLen = 128
	// MaxTitleLen максимальная длина заголовка в символах
	MaxTitleLen = 1024
)

// ValidateNoteID проверяет id или префикс id заметки
func ValidateNoteID(id string) error {
	if id == "" {
		return fmt.Errorf("note id cannot be empty")
	}

	if len(id) > MaxNoteIDLen {
		return fmt.Errorf("note id must not exceed %d characters", MaxNoteIDLen)
	}

	if !NoteIDPattern.MatchString(id) {
		return fmt.Errorf("note id can only contain letters, numbers, '-' and '_'")
	}

	return nil
}

// ValidateTitle проверяет заголовок заметки
// Заголовок однострочный, не длиннее MaxTitleLen символов
func ValidateTitle(title string) error {
	if !utf8.ValidString(title) {
		return fmt.Errorf("title must be valid UTF-8")
	}

	if utf8.RuneCountInString(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	if strings.ContainsAny(title, "\r\n") {
		return fmt.Errorf("title must be a single line")
	}

	return nil
}
