// Package i18n holds the fr/en message catalog. French is the reference
// language: unknown languages fall back to the French translation, unknown
// codes fall back to the code itself so missing entries stay visible.
package i18n

import "strings"

var messages = map[string]map[string]string{
	"fr": {
		"required":              "Requis",
		"confirmation_mismatch": "Les deux mots de passe doivent correspondre.",
		"too_long":              "Trop long",
		"already_taken":         "Ce nom d'utilisateur est déjà utilisé.",

		"flash.task_created":   "La tâche a bien été ajoutée.",
		"flash.task_updated":   "La tâche a bien été modifiée.",
		"flash.task_deleted":   "La tâche a bien été supprimée.",
		"flash.task_done":      "La tâche %s a bien été marquée comme faite.",
		"flash.task_undone":    "La tâche %s a bien été marquée comme non terminée.",
		"flash.task_forbidden": "Vous n'avez pas les droits pour accéder à cette tâche.",
		"flash.user_created":   "L'utilisateur a bien été ajouté.",
		"flash.user_updated":   "L'utilisateur a bien été modifié.",
		"flash.login_required": "Vous devez être connecté pour effectuer cette action.",

		"nav.tasks":     "Tâches",
		"nav.users":     "Utilisateurs",
		"nav.login":     "Se connecter",
		"nav.logout":    "Se déconnecter",
		"login.failed":  "Identifiants invalides.",
		"label.title":   "Titre",
		"label.content": "Contenu",
	},
	"en": {
		"required":              "Required",
		"confirmation_mismatch": "The two passwords must match.",
		"too_long":              "Too long",
		"already_taken":         "This username is already taken.",

		"flash.task_created":   "The task has been added.",
		"flash.task_updated":   "The task has been updated.",
		"flash.task_deleted":   "The task has been deleted.",
		"flash.task_done":      "Task %s has been marked as done.",
		"flash.task_undone":    "Task %s has been marked as not done.",
		"flash.task_forbidden": "You do not have permission to access this task.",
		"flash.user_created":   "The user has been added.",
		"flash.user_updated":   "The user has been updated.",
		"flash.login_required": "You must be logged in to perform this action.",

		"nav.tasks":     "Tasks",
		"nav.users":     "Users",
		"nav.login":     "Log in",
		"nav.logout":    "Log out",
		"login.failed":  "Invalid credentials.",
		"label.title":   "Title",
		"label.content": "Content",
	},
}

// T translates code for lang. Unknown lang falls back to French, unknown
// code falls back to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages["fr"][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if len(lang) >= 2 {
			lang = lang[:2]
		}
		switch lang {
		case "fr", "en":
			return lang
		}
	}
	return "fr"
}
