// Copyright 2023 SCION Association
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

// Package processmetrics exports scheduling and file descriptor statistics
// of the running process that the default prometheus process collector does
// not cover. Only Linux is supported. On other platforms Register is a
// no-op.
//
// The running and runnable times together give the CPU share the policy
// service was granted:
//
//	rate(process_running_seconds_total[1m])
//	  / (rate(process_running_seconds_total[1m]) + rate(process_runnable_seconds_total[1m]))
//
// process_open_files tracks descriptor usage across ACL regeneration.
package processmetrics
