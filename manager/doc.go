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


// Package manager enforces business rules over the entity repositories.
//
// Each manager keeps in-memory indexes rebuilt from its repository:
//   - a name index mapping case-folded names to IDs, used for uniqueness
//     checks and exact name lookups
//   - a tag index mapping each recipe tag to the set of recipe IDs carrying it
//
// Multi-tag queries combine index sets by intersection (match all) or union
// (match any) and fetch the resulting records in ascending ID order.
// Ingredient queries scan the repository on demand.
//
// Managers are the only writers of their repositories. After every call
// returns, the indexes mirror the persisted collection: index updates happen
// only once the repository reports a successful save or remove.
package manager
