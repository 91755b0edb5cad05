package mock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_CreateThread(t *testing.T) {
	t.Parallel()
	t.Run("delegates to CreateThreadFn", func(t *testing.T) {
		t.Parallel()
		g := mock.Gateway{
			CreateThreadFn: func(ctx context.Context) (string, error) {
				return "thread_1", nil
			},
		}
		id, err := g.CreateThread(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "thread_1", id)
	})

	t.Run("panics when CreateThreadFn not set", func(t *testing.T) {
		t.Parallel()
		g := mock.Gateway{}
		assert.Panics(t, func() {
			_, _ = g.CreateThread(context.Background())
		})
	})
}

func TestGateway_SubmitAndAwait(t *testing.T) {
	t.Parallel()
	t.Run("passes arguments through", func(t *testing.T) {
		t.Parallel()
		g := mock.Gateway{
			SubmitAndAwaitFn: func(ctx context.Context, threadID, text string, timeout time.Duration) (fatvo.Run, error) {
				assert.Equal(t, "thread_1", threadID)
				assert.Equal(t, "Салом", text)
				assert.Equal(t, time.Minute, timeout)
				return fatvo.Run{Status: fatvo.RunCompleted, Text: "Ваалайкум"}, nil
			},
		}
		run, err := g.SubmitAndAwait(context.Background(), "thread_1", "Салом", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, "Ваалайкум", run.Text)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		g := mock.Gateway{
			SubmitAndAwaitFn: func(ctx context.Context, threadID, text string, timeout time.Duration) (fatvo.Run, error) {
				return fatvo.Run{}, fatvo.ErrCredentialInvalid
			},
		}
		_, err := g.SubmitAndAwait(context.Background(), "t", "x", time.Second)
		assert.ErrorIs(t, err, fatvo.ErrCredentialInvalid)
	})
}

func TestTransliterator_Convert(t *testing.T) {
	t.Parallel()
	tr := mock.Transliterator{
		ConvertFn: func(text string, dir fatvo.Direction) (string, fatvo.Outcome) {
			return text + "!", fatvo.Converted
		},
	}
	got, outcome := tr.Convert("salom", fatvo.LatinToCyrillic)
	assert.Equal(t, "salom!", got)
	assert.Equal(t, fatvo.Converted, outcome)
}

func TestPresenter(t *testing.T) {
	t.Parallel()

	t.Run("unset fields are no-ops", func(t *testing.T) {
		t.Parallel()
		p := mock.Presenter{}
		assert.NotPanics(t, func() {
			p.RenderMessage(fatvo.RoleUser, "a", "")
			p.ShowNotice("b")
			p.ShowError("c")
		})
	})

	t.Run("delegates", func(t *testing.T) {
		t.Parallel()
		var calls []string
		p := mock.Presenter{
			RenderMessageFn: func(role fatvo.Role, content, caption string) {
				calls = append(calls, string(role)+":"+content+":"+caption)
			},
			ShowNoticeFn: func(text string) { calls = append(calls, "notice:"+text) },
			ShowErrorFn:  func(text string) { calls = append(calls, "error:"+text) },
		}
		p.RenderMessage(fatvo.RoleAssistant, "Javob", "Жавоб")
		p.ShowNotice("n")
		p.ShowError(errors.New("e").Error())
		assert.Equal(t, []string{"assistant:Javob:Жавоб", "notice:n", "error:e"}, calls)
	})
}
