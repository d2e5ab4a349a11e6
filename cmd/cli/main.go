package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"alfredoptarigan/talentscout/internal/config"
	"alfredoptarigan/talentscout/internal/models"
	"alfredoptarigan/talentscout/internal/services"
)

func main() {
	exportFlag := flag.Bool("export", false, "print every stored candidate record as JSON and exit")
	countFlag := flag.Bool("count", false, "print the number of stored candidate records and exit")
	flag.Parse()

	// Load configuration. Reading stored records needs no model credential.
	cfg, err := config.LoadStorageOnly()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	appLog := config.SetupLogger(cfg)
	store := services.NewCSVStore(cfg.Storage.DataDir, cfg.Storage.CSVFilename, appLog)

	switch {
	case *countFlag:
		fmt.Println(store.Count())
		return
	case *exportFlag:
		if err := exportRecords(os.Stdout, store); err != nil {
			log.Fatalf("❌ Failed to export candidates: %v", err)
		}
		return
	}

	if err := cfg.RequireCredential(); err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	bank, err := services.LoadQuestionBank(cfg.Interview.QuestionBankPath)
	if err != nil {
		log.Fatalf("❌ Failed to load question bank: %v", err)
	}

	ctx := context.Background()
	llm, err := services.NewLLMService(ctx, cfg.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s model: %v", cfg.Model.Provider, err)
	}

	generator := services.NewQuestionGenerator(llm, cfg.Model.Timeout, appLog)
	interviewer := services.NewInterviewer(bank, generator, store, services.InterviewSettings{
		AssistantName:      cfg.App.AssistantName(),
		MaxTechQuestions:   cfg.Interview.MaxTechQuestions,
		MinAnswerLength:    cfg.Interview.MinAnswerLength,
		MaxExperienceYears: cfg.Interview.MaxExperienceYears,
	}, appLog)
	assembler := services.NewRecordAssembler(bank, cfg.Interview.MaxTechQuestions)

	fmt.Printf("%s %s\n\n", cfg.App.Icon, cfg.App.Title)
	if err := runInterview(ctx, os.Stdin, os.Stdout, interviewer, assembler, store); err != nil {
		log.Fatalf("❌ Interview failed: %v", err)
	}
}

// runInterview drives one interview over in/out until it completes, the
// candidate leaves, or input ends.
func runInterview(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	interviewer services.Interviewer,
	assembler services.RecordAssembler,
	store services.CandidateStore,
) error {
	scanner := bufio.NewScanner(in)
	session := interviewer.Start(ctx)

	for _, m := range session.Messages {
		printReply(out, m.Content)
	}

	for !session.Closed() {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		next, outcome, err := interviewer.Process(ctx, session, scanner.Text())
		if err != nil {
			return err
		}
		session = next

		for _, reply := range outcome.Replies {
			printReply(out, reply)
		}
	}

	if session.Aborted {
		return nil
	}

	summary := interviewer.Summary(session)
	printSummary(out, summary)

	for {
		fmt.Fprint(out, "Save your interview? [y/n] > ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return nil
		case "y", "yes":
			if err := store.Save(assembler.Assemble(session, time.Now())); err != nil {
				printReply(out, services.MessageSaveFailed)
				continue
			}
			printReply(out, services.MessageSaveSucceeded)
			return nil
		}
	}
}

func printReply(out io.Writer, text string) {
	fmt.Fprintf(out, "%s\n\n", text)
}

func printSummary(out io.Writer, summary models.SessionSummary) {
	fmt.Fprintln(out, "📋 Interview Summary")
	for _, a := range summary.BasicInfo {
		fmt.Fprintf(out, "  %s %s\n", a.Question, a.Answer)
	}
	for i, qa := range summary.Technical {
		fmt.Fprintf(out, "  Q%d: %s\n  A%d: %s\n", i+1, qa.Question, i+1, qa.Answer)
	}
	fmt.Fprintln(out)
}

func exportRecords(out io.Writer, store services.CandidateStore) error {
	records, err := store.LoadAll()
	if err != nil {
		return err
	}

	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Map())
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
