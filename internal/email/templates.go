package email

import (
	"fmt"
	"strings"
)

type Message struct {
	Subject string
	Body    string
}

type CaptainAssignedDetails struct {
	CaptainName string
	TeamName    string
	Year        int64
	TeamURL     string
}

func BuildCaptainAssignedEmail(details CaptainAssignedDetails) Message {
	captainName := strings.TrimSpace(details.CaptainName)
	if captainName == "" {
		captainName = "there"
	}
	teamName := strings.TrimSpace(details.TeamName)
	if teamName == "" {
		teamName = "your team"
	}

	subject := fmt.Sprintf("You are now captain of %s", teamName)

	lines := []string{
		fmt.Sprintf("Hi %s,", captainName),
		"",
		fmt.Sprintf("You have been made captain of %s.", teamName),
	}
	if details.Year > 0 {
		lines = append(lines, fmt.Sprintf("Season year: %d", details.Year))
	}
	if url := strings.TrimSpace(details.TeamURL); url != "" {
		lines = append(lines, fmt.Sprintf("Team page: %s", url))
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}
