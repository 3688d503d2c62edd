package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// The readme is the index of the topics. It must list every topic file,
	// and every listed topic must load.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("nonexistent"); err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
}

func TestGetTopic_Star(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*): %v", err)
	}
	for _, topic := range all {
		single, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q): %v", topic, err)
		}
		if !strings.Contains(content, single) {
			t.Errorf("expanded content is missing topic %q", topic)
		}
	}
}

// TestTopicStructure parses every topic and checks the shape a reader
// expects: exactly one H1, opening the document, followed by real content.
func TestTopicStructure(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	files := append([]string{"readme"}, all...)

	for _, topic := range files {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatalf("loading %q: %v", topic, err)
			}
			source := []byte(content)

			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			var h1s, blocks int
			var firstIsH1 bool
			first := true
			err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering || n.Type() != ast.TypeBlock || n == root {
					return ast.WalkContinue, nil
				}
				if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
					h1s++
					if first {
						firstIsH1 = true
					}
				} else {
					blocks++
				}
				first = false
				return ast.WalkSkipChildren, nil
			})
			if err != nil {
				t.Fatalf("walking %q: %v", topic, err)
			}

			if h1s != 1 {
				t.Errorf("topic %q has %d H1 headings, want exactly 1", topic, h1s)
			}
			if !firstIsH1 {
				t.Errorf("topic %q does not open with its H1", topic)
			}
			if blocks == 0 {
				t.Errorf("topic %q has a title and no content", topic)
			}
		})
	}
}
