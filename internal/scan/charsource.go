// Copyright 2026 The sdjson Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scan

import "io"

// CharSource is the character source collaborator: anything that can be
// read from up to N bytes at a time, with io.EOF signalling exhaustion.
// Any io.Reader satisfies this directly.
type CharSource = io.Reader

// bufferSize mirrors a 1 KB read buffer; it is the size of the
// bufio.Reader the machine wraps every CharSource in.
const bufferSize = 1024
