// Copyright 2025 Poiesic Systems
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


package manager

import (
	"errors"
	"fmt"
)

// ErrBusinessRule is wrapped by every error reporting a violated business rule.
var ErrBusinessRule = errors.New("business rule violated")

var (
	// ErrDuplicateName is returned when a name or username is already taken.
	ErrDuplicateName = fmt.Errorf("%w: name already exists", ErrBusinessRule)

	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = fmt.Errorf("%w: not found", ErrBusinessRule)

	// ErrLastAdmin is returned when an operation would leave no Admin user.
	ErrLastAdmin = fmt.Errorf("%w: cannot remove the last admin", ErrBusinessRule)

	// ErrPermissionDenied is returned when the acting user lacks the required role.
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrBusinessRule)

	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrBusinessRule)

	// ErrAlreadyBootstrapped is returned when bootstrapping a non-empty user collection.
	ErrAlreadyBootstrapped = fmt.Errorf("%w: users already exist", ErrBusinessRule)
)

// ErrRepositoryRequired is returned when a manager is built without a repository.
var ErrRepositoryRequired = errors.New("repository required")

// IsBusinessError reports whether err is a business rule violation.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrBusinessRule)
}
