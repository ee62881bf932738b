// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package gsheets-feed is a client for the Google Spreadsheets worksheets, list and cells feeds.

The spreadsheet package reads and updates a spreadsheet identified by its key, anonymously for
published spreadsheets or with an access token or service account for private ones. Rows are
addressed by the list feed column names and cells by row and column.

gsheets-feed can also be used from the command line and supports the following commands:

  - authorise, to authorise access to the spreadsheet feeds with a Google account
  - get-info, to list the worksheets in a spreadsheet
  - get-rows, to display the rows of a worksheet or download them as a TSV file
  - add-row, to append rows to a worksheet from the command line or a TSV file
  - update-row, to set column values in the rows matching a query
  - delete-row, to delete the rows matching a query
  - get-cells, to display a range of cells
  - set-cell, to update a single cell
  - add-worksheet, to add a worksheet to a spreadsheet
  - revision, to display the latest revision of a spreadsheet
*/
package gsheets
