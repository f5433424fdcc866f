package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachments_Without(t *testing.T) {
	list := Attachments{
		{ID: "a", Path: "tasks/a.pdf"},
		{ID: "b", Path: "tasks/b.png"},
	}

	rest, removed := list.Without("a")
	require.NotNil(t, removed)
	assert.Equal(t, "tasks/a.pdf", removed.Path)
	assert.Equal(t, Attachments{{ID: "b", Path: "tasks/b.png"}}, rest)
	assert.Len(t, list, 2, "original list is not modified")

	same, removed := list.Without("missing")
	assert.Nil(t, removed)
	assert.Equal(t, list, same)
}

func TestAttachments_ValueScan(t *testing.T) {
	list := Attachments{{ID: "a", Path: "tasks/a.pdf", OriginalName: "brief.pdf"}}

	v, err := list.Value()
	require.NoError(t, err)

	var scanned Attachments
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, list, scanned)

	var empty Attachments
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestCreateTaskRequest_Uploads(t *testing.T) {
	base := CreateTaskRequest{
		Title:     "Write brief",
		SectionID: "501",
		ProjectID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		Team:      []string{"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8c"},
	}
	require.NoError(t, base.Validate())

	tooMany := base
	tooMany.Uploads = make([]Upload, MaxAttachments+1)
	assert.ErrorIs(t, tooMany.Validate(), ErrTooManyAttachments)

	badType := base
	badType.Uploads = []Upload{{Filename: "run.exe", ContentType: "application/x-msdownload", Size: 10}}
	assert.ErrorIs(t, badType.Validate(), ErrFileTypeNotAllowed)

	tooBig := base
	tooBig.Uploads = []Upload{{Filename: "deck.pptx", ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation", Size: MaxAttachmentSize + 1}}
	assert.ErrorIs(t, tooBig.Validate(), ErrFileSizeExceeds)

	ok := base
	ok.Uploads = []Upload{{Filename: "brief.pdf", ContentType: "application/pdf", Size: 1024}}
	assert.NoError(t, ok.Validate())
}
