// internal/workflow/render.go
package workflow

import (
    "strings"
)

// RenderTitle fills {placeholder} tokens in a workflow title template.
func RenderTitle(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}
