package cli

const noteTemplate = `
=== {{if .Title}}{{.Title}}{{else}}(untitled){{end}} ===

ID:       {{.ID}}
Updated:  {{.UpdatedAt.Local.Format "2006-01-02 15:04:05"}}
Version:  {{.BaseVersion}}
Status:   {{.SyncStatus}}
{{- if .LastSyncedAt}}
Synced:   {{.LastSyncedAt.Local.Format "2006-01-02 15:04:05"}}
{{- end}}

{{.ContentText}}
`

const statusTemplate = `=== Sync Status ===

Server:        {{.Server}}
Pending:       {{.Pending}} note(s)
Last pull:     {{if .Cursor}}{{.Cursor}}{{else}}never{{end}}
Sync daemon:   {{if .DaemonRunning}}running{{else}}not running{{end}}
`
