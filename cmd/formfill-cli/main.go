package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/fill"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/report"
)

func main() {
	fieldsPath := flag.String("fields", "", "field file (JSON or YAML)")
	htmlPath := flag.String("html", "", "HTML document to fill")
	streamPath := flag.String("stream", "", "NDJSON update stream to apply incrementally")
	output := flag.String("output", "", "output file (stdout if empty)")
	reportPath := flag.String("report", "", "write a fill report to this file ('-' for stderr)")
	testMode := flag.Bool("test-mode", false, "synthesize plausible values instead of supplied ones")
	yes := flag.Bool("yes", false, "overwrite the output file without asking")
	flag.Parse()

	if *fieldsPath == "" || *htmlPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	fields, err := loadFields(*fieldsPath)
	if err != nil {
		log.Fatalf("load fields: %v", err)
	}

	page, err := os.Open(*htmlPath)
	if err != nil {
		log.Fatalf("open html: %v", err)
	}
	defer page.Close()

	doc, err := dom.Parse(page)
	if err != nil {
		log.Fatalf("parse html: %v", err)
	}

	session := fill.New(doc)

	var res *fill.Result
	if *streamPath != "" {
		updates, err := os.Open(*streamPath)
		if err != nil {
			log.Fatalf("open stream: %v", err)
		}
		defer updates.Close()
		res, err = session.FillStream(ctx, fields, updates, *testMode)
		if err != nil {
			log.Fatalf("fill stream: %v", err)
		}
	} else {
		res, err = session.FillFields(ctx, fields, *testMode)
		if err != nil {
			log.Fatalf("fill fields: %v", err)
		}
	}

	if err := writeDocument(doc, *output, *yes); err != nil {
		log.Fatalf("write output: %v", err)
	}

	if *reportPath != "" {
		if err := writeReport(res, session.ID(), *htmlPath, *testMode, *reportPath); err != nil {
			log.Fatalf("write report: %v", err)
		}
	}
}

func loadFields(path string) ([]model.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fields []model.Field
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	return fields, nil
}

func writeDocument(doc *dom.Document, output string, overwrite bool) error {
	if output == "" {
		return doc.Render(os.Stdout)
	}

	if _, err := os.Stat(output); err == nil && !overwrite {
		confirmed := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("%s exists, overwrite?", output),
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("refusing to overwrite %s", output)
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()
	return doc.Render(out)
}

func writeReport(res *fill.Result, sessionID, source string, testMode bool, path string) error {
	renderer, err := report.New()
	if err != nil {
		return err
	}

	meta := report.Meta{SessionID: sessionID, Source: source, TestMode: testMode}
	rendered, err := renderer.Render(res, meta)
	if err != nil {
		return err
	}

	if path == "-" {
		_, err = fmt.Fprint(os.Stderr, rendered)
		return err
	}
	return os.WriteFile(path, []byte(rendered), 0o644)
}
