package client

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/MKhiriev/sqledu-client/internal/validators"
	"github.com/MKhiriev/sqledu-client/models"
)

func runLogin(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	req := models.LoginRequest{}
	fs.StringVar(&req.Email, "u", "", "email or username")
	fs.StringVar(&req.Password, "p", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	user, err := a.session.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func runRegister(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	req := models.RegisterRequest{}
	var invite string
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.ConfirmPassword, "confirm", "", "password confirmation")
	fs.StringVar(&req.Captcha, "code", "", "code received by email")
	fs.StringVar(&invite, "invite", "", "teacher invite code")
	if err := parse(fs, args); err != nil {
		return err
	}
	if invite != "" {
		req.InviteCode = &invite
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	out, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.printJSON(out)
}

func runCode(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	email := fs.String("email", "", "email address")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.validator.Validate(ctx, models.RegisterRequest{Email: *email}, validators.FieldEmail); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	out, err := a.session.RequestEmailCode(ctx, *email)
	if err != nil {
		return err
	}
	return a.printJSON(out)
}

func runLogout(ctx context.Context, a *App, _ *flag.FlagSet, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, "logged out")
	return err
}

func runVersion(_ context.Context, a *App, _ *flag.FlagSet, _ []string) error {
	_, err := fmt.Fprintln(a.out, a.buildInfo.String())
	return err
}

func runWhoami(ctx context.Context, a *App, _ *flag.FlagSet, _ []string) error {
	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func runProfile(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	username := fs.String("username", "", "new username")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *username != "" {
		if _, err := a.api.Auth.UpdateProfile(ctx, models.UpdateProfileRequest{Username: *username}); err != nil {
			return err
		}
	}

	user, err := a.session.RefreshProfile(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func runToken(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	copyToken := fs.Bool("copy", false, "copy the access token to the clipboard")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *copyToken {
		token, err := a.session.AccessToken(ctx)
		if err != nil {
			return err
		}
		if err = a.copyToClipboard(token); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		_, err = fmt.Fprintln(a.out, "access token copied to clipboard")
		return err
	}

	info, err := a.session.TokenInfo(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(info)
}

func runQuestions(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	skip := fs.Int("skip", 0, "number of questions to skip")
	limit := fs.Int("limit", 0, "maximum number of questions")
	if err := parse(fs, args); err != nil {
		return err
	}

	questions, err := a.api.Questions.GetQuestions(ctx, *skip, *limit)
	if err != nil {
		return err
	}
	return a.printJSON(questions)
}

func runQuestion(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	rate := fs.Int("rate", 0, "submit a 1..10 difficulty rating")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := positionalID(fs)
	if err != nil {
		return err
	}

	if *rate != 0 {
		req := models.DifficultyFeedbackRequest{Rating: *rate}
		if err = a.validator.Validate(ctx, req); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		if _, err = a.api.Questions.SubmitDifficultyFeedback(ctx, id, *rate); err != nil {
			return err
		}
	}

	q, err := a.api.Questions.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(q)
}

func runHint(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	req := models.SQLHintRequest{}
	fs.StringVar(&req.SQL, "sql", "", "SQL to get a hint for")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	hint, err := a.api.AI.SQLHint(ctx, req.SQL)
	if err != nil {
		return err
	}
	return a.printJSON(hint)
}

func runCheck(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	req := models.CheckSQLRequest{}
	fs.Int64Var(&req.QuestionID, "q", 0, "question ID")
	fs.StringVar(&req.StudentSQL, "sql", "", "answer SQL")
	fs.StringVar(&req.Language, "lang", "", "language of the feedback")
	fs.BoolVar(&req.ChallengeMode, "challenge", false, "challenge mode")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	verdict, err := a.api.AI.CheckSQL(ctx, req)
	if err != nil {
		return err
	}
	return a.printJSON(verdict)
}

func runSubmissions(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	questionID := fs.Int64("q", 0, "only submissions for this question")
	limit := fs.Int("limit", 0, "maximum number of submissions")
	id := fs.Int64("id", 0, "show a single submission")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *id > 0 {
		sub, err := a.api.AI.GetSubmission(ctx, *id)
		if err != nil {
			return err
		}
		return a.printJSON(sub)
	}

	subs, err := a.api.AI.GetMySubmissions(ctx, *questionID, *limit)
	if err != nil {
		return err
	}
	return a.printJSON(subs)
}

func runChat(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	req := models.ChatRequest{}
	fs.Int64Var(&req.QuestionID, "q", 0, "question ID")
	fs.StringVar(&req.Message, "m", "", "message to the tutor")
	fs.StringVar(&req.Language, "lang", "", "reply language")
	history := fs.Bool("history", false, "show the conversation")
	limit := fs.Int("limit", 0, "maximum number of messages with -history")
	clearChat := fs.Bool("clear", false, "delete the conversation")
	if err := parse(fs, args); err != nil {
		return err
	}

	switch {
	case *history:
		if err := a.validator.Validate(ctx, req, validators.FieldQuestionID); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		msgs, err := a.api.AI.GetChatMessages(ctx, req.QuestionID, *limit)
		if err != nil {
			return err
		}
		return a.printJSON(msgs)

	case *clearChat:
		if err := a.validator.Validate(ctx, req, validators.FieldQuestionID); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		deleted, err := a.api.AI.ClearChatMessages(ctx, req.QuestionID)
		if err != nil {
			return err
		}
		return a.printJSON(deleted)

	default:
		if err := a.validator.Validate(ctx, req); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		reply, err := a.api.AI.ChatWithTeacher(ctx, req)
		if err != nil {
			return err
		}
		return a.printJSON(reply)
	}
}

func runKnowledgePoints(ctx context.Context, a *App, _ *flag.FlagSet, _ []string) error {
	points, err := a.api.Questions.GetKnowledgePoints(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(points)
}

func runGenerate(ctx context.Context, a *App, fs *flag.FlagSet, args []string) error {
	req := models.GenerateQuestionsRequest{}
	fs.StringVar(&req.KnowledgePointID, "kp", "", "knowledge point ID")
	fs.IntVar(&req.Count, "count", 1, "number of questions to draft")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	questions, err := a.api.Questions.GenerateQuestionsByAI(ctx, req.KnowledgePointID, req.Count)
	if err != nil {
		return err
	}
	return a.printJSON(questions)
}

func positionalID(fs *flag.FlagSet) (int64, error) {
	if fs.NArg() != 1 {
		return 0, fmt.Errorf("%w: expected exactly one ID", ErrUsage)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid ID %q", ErrUsage, fs.Arg(0))
	}
	return id, nil
}
