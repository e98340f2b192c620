// Package timezone pins the whole service to one fixed timezone.
//
// Every timestamp that enters or leaves the system carries an explicit
// offset, and all scheduling arithmetic (operating-hour windows, slot
// stepping, recurrence expansion) happens in this one location. The
// location is configured via APP_TIMEZONE and defaults to Asia/Kolkata.
// DST is deliberately out of scope.
package timezone
