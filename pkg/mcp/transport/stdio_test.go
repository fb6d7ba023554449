// Copyright 2026 Dataflow Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package transport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdio_ReceiveLines(t *testing.T) {
	in := strings.NewReader("{\"a\":1}\n\n{\"b\":2}\r\n")
	tr := NewStdio(in, io.Discard)
	ctx := context.Background()

	msg, err := tr.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(msg))

	// Empty lines are skipped; CRLF is trimmed.
	msg, err = tr.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(msg))

	_, err = tr.Receive(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestStdio_SendAppendsNewline(t *testing.T) {
	var out bytes.Buffer
	tr := NewStdio(strings.NewReader(""), &out)

	require.NoError(t, tr.Send(context.Background(), []byte(`{"ok":true}`)))

	assert.Equal(t, "{\"ok\":true}\n", out.String())
}

func TestStdio_ReceiveHonorsContext(t *testing.T) {
	// A reader that never produces data.
	pr, pw := io.Pipe()
	defer pw.Close()
	tr := NewStdio(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := tr.Receive(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStdio_ClosedTransportRefusesIO(t *testing.T) {
	tr := NewStdio(strings.NewReader("x\n"), io.Discard)
	require.NoError(t, tr.Close())

	err := tr.Send(context.Background(), []byte("y"))
	assert.Error(t, err)

	_, err = tr.Receive(context.Background())
	assert.Error(t, err)
}
