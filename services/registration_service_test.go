package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
	"github.com/DCirincione/ASLWebsite/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name, label string, fieldType models.FieldType, required bool, order int) models.RegistrationField {
	return models.RegistrationField{
		ID:        "field-" + name,
		ProgramID: "prog-1",
		Label:     label,
		Name:      name,
		Type:      fieldType,
		Required:  required,
		Order:     order,
	}
}

func testFields() []models.RegistrationField {
	return []models.RegistrationField{
		field("full_name", "Full name", models.FieldText, true, 1),
		field("email", "Email address", models.FieldEmail, true, 2),
		field("tshirt", "T-shirt size", models.FieldSelect, false, 3),
		field("waiver_accepted", "Waiver agreement", models.FieldCheckbox, true, 4),
		field("roster", "Team roster", models.FieldFile, true, 5),
	}
}

func TestValidateAnswersReportsFirstMissingFieldInFormOrder(t *testing.T) {
	err := ValidateAnswers(testFields(), map[string]string{}, nil)

	require.NotNil(t, err)
	assert.Equal(t, "full_name", err.Field)
	assert.Equal(t, "Full name is required.", err.Message)
}

func TestValidateAnswersWhitespaceDoesNotSatisfyText(t *testing.T) {
	values := map[string]string{"full_name": "   "}

	err := ValidateAnswers(testFields(), values, nil)

	require.NotNil(t, err)
	assert.Equal(t, "full_name", err.Field)
}

func TestValidateAnswersCheckboxMustBeTruthy(t *testing.T) {
	values := map[string]string{
		"full_name":       "Alex Johnson",
		"email":           "alex@example.com",
		"waiver_accepted": "false",
	}
	files := map[string][]FileUpload{
		"roster": {{Filename: "roster.pdf"}},
	}

	err := ValidateAnswers(testFields(), values, files)

	require.NotNil(t, err)
	assert.Equal(t, "waiver_accepted", err.Field)
	assert.Equal(t, "Waiver agreement is required.", err.Message)
}

func TestValidateAnswersRequiredFileMustBePresent(t *testing.T) {
	values := map[string]string{
		"full_name":       "Alex Johnson",
		"email":           "alex@example.com",
		"waiver_accepted": "on",
	}

	err := ValidateAnswers(testFields(), values, nil)

	require.NotNil(t, err)
	assert.Equal(t, "roster", err.Field)
}

func TestValidateAnswersCompleteSubmissionPasses(t *testing.T) {
	values := map[string]string{
		"full_name":       "Alex Johnson",
		"email":           "alex@example.com",
		"waiver_accepted": "on",
	}
	files := map[string][]FileUpload{
		"roster": {{Filename: "roster.pdf"}},
	}

	assert.Nil(t, ValidateAnswers(testFields(), values, files))
}

type fakeRegistrationRepo struct {
	program     *models.RegistrationProgram
	fields      []models.RegistrationField
	submissions []models.RegistrationSubmission
}

func (f *fakeRegistrationRepo) GetProgramBySlug(_ context.Context, _ *backend.Session, slug string) (*models.RegistrationProgram, error) {
	if f.program == nil || f.program.Slug != slug {
		return nil, repositories.ErrProgramNotFound
	}
	return f.program, nil
}

func (f *fakeRegistrationRepo) ListFieldsByProgram(_ context.Context, _ *backend.Session, _ string) ([]models.RegistrationField, error) {
	return f.fields, nil
}

func (f *fakeRegistrationRepo) CreateSubmission(_ context.Context, _ *backend.Session, submission *models.RegistrationSubmission) error {
	f.submissions = append(f.submissions, *submission)
	return nil
}

type fakeUploader struct {
	keys    []string
	failOn  string
	baseURL string
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	if f.failOn != "" && strings.Contains(key, f.failOn) {
		return nil, errors.New("upstream rejected the object")
	}
	f.keys = append(f.keys, key)
	return &storage.UploadResult{Key: key, Location: f.baseURL + "/" + key}, nil
}

func (f *fakeUploader) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return f.baseURL + "/" + key }

func basketballProgram() *models.RegistrationProgram {
	sport := "basketball"
	return &models.RegistrationProgram{
		ID:        "prog-1",
		Name:      "Spring Basketball League",
		Slug:      "spring-basketball",
		SportSlug: &sport,
		Active:    true,
	}
}

func TestGetFormUnknownSlugIsUnavailable(t *testing.T) {
	svc := NewRegistrationService(&fakeRegistrationRepo{}, &fakeUploader{})

	_, err := svc.GetForm(context.Background(), nil, "nope")

	assert.ErrorIs(t, err, ErrRegistrationUnavailable)
}

func TestSubmitRequiresSession(t *testing.T) {
	svc := NewRegistrationService(&fakeRegistrationRepo{}, &fakeUploader{})

	err := svc.Submit(context.Background(), nil, "spring-basketball", nil, nil)

	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestSubmitBlocksOnValidationBeforeAnyWrite(t *testing.T) {
	repo := &fakeRegistrationRepo{program: basketballProgram(), fields: testFields()}
	uploader := &fakeUploader{}
	svc := NewRegistrationService(repo, uploader)

	err := svc.Submit(context.Background(), sessionFor("me"), "spring-basketball", map[string]string{}, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Full name is required.", validationErr.Message)
	assert.Empty(t, uploader.keys)
	assert.Empty(t, repo.submissions)
}

func TestSubmitStoresAnswersAndSingleFilePath(t *testing.T) {
	repo := &fakeRegistrationRepo{program: basketballProgram(), fields: testFields()}
	uploader := &fakeUploader{baseURL: "https://files.example.com"}
	svc := NewRegistrationService(repo, uploader)

	values := map[string]string{
		"full_name":       "Alex Johnson",
		"email":           "alex@example.com",
		"tshirt":          "L",
		"waiver_accepted": "on",
	}
	files := map[string][]FileUpload{
		"roster": {{Filename: "team roster.pdf", ContentType: "application/pdf", Reader: strings.NewReader("pdf")}},
	}

	err := svc.Submit(context.Background(), sessionFor("me"), "spring-basketball", values, files)

	require.NoError(t, err)
	require.Len(t, repo.submissions, 1)
	submission := repo.submissions[0]

	assert.Equal(t, "prog-1", submission.ProgramID)
	assert.Equal(t, "me", submission.UserID)
	assert.True(t, submission.WaiverAccepted)
	assert.Equal(t, "Alex Johnson", submission.Answers["full_name"])
	assert.Equal(t, true, submission.Answers["waiver_accepted"])

	require.Len(t, uploader.keys, 1)
	key := uploader.keys[0]
	assert.True(t, strings.HasPrefix(key, "spring-basketball/"))
	assert.True(t, strings.HasSuffix(key, "-team_roster.pdf"))

	// Single file stores a bare path, not a list.
	path, ok := submission.Answers["roster"].(string)
	require.True(t, ok)
	assert.Equal(t, key, path)
	assert.Equal(t, []string{key}, submission.Attachments)
}

func TestSubmitStoresListForMultipleFiles(t *testing.T) {
	repo := &fakeRegistrationRepo{program: basketballProgram(), fields: testFields()}
	uploader := &fakeUploader{}
	svc := NewRegistrationService(repo, uploader)

	values := map[string]string{
		"full_name":       "Alex Johnson",
		"email":           "alex@example.com",
		"waiver_accepted": "yes",
	}
	files := map[string][]FileUpload{
		"roster": {
			{Filename: "page1.pdf", Reader: strings.NewReader("a")},
			{Filename: "page2.pdf", Reader: strings.NewReader("b")},
		},
	}

	err := svc.Submit(context.Background(), sessionFor("me"), "spring-basketball", values, files)

	require.NoError(t, err)
	require.Len(t, repo.submissions, 1)

	paths, ok := repo.submissions[0].Answers["roster"].([]string)
	require.True(t, ok)
	assert.Len(t, paths, 2)
	assert.Equal(t, paths, repo.submissions[0].Attachments)
}

func TestSubmitAbortsOnFirstFailedUpload(t *testing.T) {
	repo := &fakeRegistrationRepo{program: basketballProgram(), fields: testFields()}
	uploader := &fakeUploader{failOn: "page2"}
	svc := NewRegistrationService(repo, uploader)

	values := map[string]string{
		"full_name":       "Alex Johnson",
		"email":           "alex@example.com",
		"waiver_accepted": "on",
	}
	files := map[string][]FileUpload{
		"roster": {
			{Filename: "page1.pdf", Reader: strings.NewReader("a")},
			{Filename: "page2.pdf", Reader: strings.NewReader("b")},
		},
	}

	err := svc.Submit(context.Background(), sessionFor("me"), "spring-basketball", values, files)

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Empty(t, repo.submissions)
	// The first upload had already gone through; no rollback is attempted.
	assert.Len(t, uploader.keys, 1)
}

func TestTruthy(t *testing.T) {
	assert.True(t, truthy("on"))
	assert.True(t, truthy("true"))
	assert.True(t, truthy("yes"))
	assert.False(t, truthy(""))
	assert.False(t, truthy("false"))
	assert.False(t, truthy("0"))
	assert.False(t, truthy("off"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "roster.pdf", sanitizeFilename("../../roster.pdf"))
	assert.Equal(t, "roster.pdf", sanitizeFilename("C:\\Users\\me\\roster.pdf"))
	assert.Equal(t, "team_roster.pdf", sanitizeFilename("team roster.pdf"))
	assert.Equal(t, "upload", sanitizeFilename(""))
}
