// Copyright 2026 The DAQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package controller_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/faucetsdn/daq/policy/controller"
	"github.com/faucetsdn/daq/policy/controller/mock_controller"
)

const (
	startCmd = "cmd/faucet && echo SUCCESS"
	stopCmd  = "docker kill daq-faucet"
)

func TestStart(t *testing.T) {
	tests := map[string]struct {
		output    string
		err       error
		marker    string
		assertErr assert.ErrorAssertionFunc
	}{
		"success": {
			output:    "starting faucet\nSUCCESS\n",
			assertErr: assert.NoError,
		},
		"custom marker": {
			output:    "OK",
			marker:    "OK",
			assertErr: assert.NoError,
		},
		"missing marker": {
			output: "docker: container name already in use\n",
			assertErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, controller.ErrStartFailed) &&
					assert.Contains(t, err.Error(), "already in use")
			},
		},
		"marker not at end": {
			output: "SUCCESS\nthen it crashed\n",
			assertErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, controller.ErrStartFailed)
			},
		},
		"command error": {
			output: "",
			err:    errors.New("exit status 1"),
			assertErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, controller.ErrStartFailed) &&
					assert.Contains(t, err.Error(), "exit status 1")
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := mock_controller.NewMockRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), startCmd).Return(tc.output, tc.err)

			c := &controller.Controller{
				Runner:        runner,
				StartCmd:      startCmd,
				StopCmd:       stopCmd,
				SuccessMarker: tc.marker,
			}
			tc.assertErr(t, c.Start(context.Background()))
		})
	}
}

func TestStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mock_controller.NewMockRunner(ctrl)
	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), stopCmd).Return("daq-faucet\n", nil),
		runner.EXPECT().Run(gomock.Any(), stopCmd).Return("no such container",
			errors.New("exit status 1")),
	)
	c := &controller.Controller{Runner: runner, StartCmd: startCmd, StopCmd: stopCmd}
	assert.NoError(t, c.Stop(context.Background()))
	assert.Error(t, c.Stop(context.Background()))
}

func TestShellRunner(t *testing.T) {
	var r controller.ShellRunner
	out, err := r.Run(context.Background(), "echo hello && echo SUCCESS")
	assert.NoError(t, err)
	assert.Equal(t, "hello\nSUCCESS\n", out)

	_, err = r.Run(context.Background(), "exit 3")
	assert.Error(t, err)

	c := &controller.Controller{Runner: r, StartCmd: "echo SUCCESS"}
	assert.NoError(t, c.Start(context.Background()))
}

func TestCommandTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mock_controller.NewMockRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), stopCmd).DoAndReturn(
		func(ctx context.Context, _ string) (string, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "deadline set")
			<-ctx.Done()
			return "", ctx.Err()
		},
	)
	c := &controller.Controller{
		Runner:  runner,
		StopCmd: stopCmd,
		Timeout: 10 * time.Millisecond,
	}
	err := c.Stop(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
