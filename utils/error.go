package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

var ErrorLockNotObtained = errors.New("could not obtain sync lock")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
