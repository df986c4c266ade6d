package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/assistant-runner/internal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return dateStyle.Render("-")
	}
	return dateStyle.Render(t.Local().Format("2006-01-02 15:04"))
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func toolNames(tools []internal.Tool) string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

func printAssistants(w io.Writer, assistants []internal.Assistant) {
	if len(assistants) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No assistants found"))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Found %d assistant(s)", len(assistants))))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Model")+"\t"+titleStyle.Render("Tools")+"\t"+titleStyle.Render("Created")+"\t")
	for _, a := range assistants {
		name := a.Name
		if name == "" {
			name = "Untitled"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", idStyle.Render(a.ID), truncate(name, 40), a.Model, toolNames(a.Tools), formatTime(a.CreatedAt))
	}
	_ = tw.Flush()
}

func printAssistant(w io.Writer, a *internal.Assistant) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("ID:"), a.ID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Name:"), a.Name)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Model:"), a.Model)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Tools:"), toolNames(a.Tools))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Created:"), formatTime(a.CreatedAt))
	if a.Instructions != "" {
		fmt.Fprintf(w, "%s\n%s\n", labelStyle.Render("Instructions:"), a.Instructions)
	}
}

func printThread(w io.Writer, t *internal.Thread) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("ID:"), t.ID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Created:"), formatTime(t.CreatedAt))
	for k, v := range t.Metadata {
		fmt.Fprintf(w, "%s %s=%s\n", labelStyle.Render("Metadata:"), k, v)
	}
}

func printMessages(w io.Writer, messages []internal.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(w, "No messages found.")
		return
	}
	for i, m := range messages {
		fmt.Fprintf(w, "%s %s %s\n", titleStyle.Render(string(m.Role)+":"), idStyle.Render(m.ID), formatTime(m.CreatedAt))
		if len(m.FileIDs) > 0 {
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Files:"), strings.Join(m.FileIDs, ", "))
		}
		fmt.Fprintln(w, m.Content)
		if i < len(messages)-1 {
			fmt.Fprintln(w, strings.Repeat("─", 60))
		}
	}
}

func printRun(w io.Writer, r *internal.Run) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Run:"), r.ID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Thread:"), r.ThreadID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Status:"), internal.RenderStatus(r.Status))
	if r.LastError != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Last error:"), r.LastError)
	}
	for _, call := range r.RequiredToolCalls {
		fmt.Fprintf(w, "%s %s %s(%s)\n", labelStyle.Render("Tool call:"), call.ID, call.Name, call.Arguments)
	}
}

func printFiles(w io.Writer, files []internal.File) {
	if len(files) == 0 {
		fmt.Fprintln(w, headerStyle.Render("No files found"))
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Found %d file(s)", len(files))))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, titleStyle.Render("ID")+"\t"+titleStyle.Render("Filename")+"\t"+titleStyle.Render("Bytes")+"\t"+titleStyle.Render("Purpose")+"\t"+titleStyle.Render("Created")+"\t")
	for _, f := range files {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n", idStyle.Render(f.ID), truncate(f.Filename, 40), f.Bytes, f.Purpose, formatTime(f.CreatedAt))
	}
	_ = tw.Flush()
}
